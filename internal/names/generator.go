// Package names generates human-readable node names for Tessera nodes in
// "adjective-noun" format. A name is assigned on first start when the
// persisted configuration carries none, then written back so the node keeps
// its identity across restarts.
package names

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Adjectives drawn from general and geometric themes
var adjectives = []string{
	"amber", "ancient", "angular", "beveled", "bold",
	"bright", "brisk", "calm", "ceramic", "clever",
	"cobalt", "crimson", "crystalline", "curious", "daring",
	"deft", "diligent", "eager", "elastic", "emerald",
	"faceted", "fearless", "fluent", "fractal", "gilded",
	"glazed", "golden", "honest", "indigo", "inlaid",
	"ivory", "jade", "keen", "lattice", "lively",
	"lucid", "luminous", "marbled", "modest", "mosaic",
	"nimble", "oblique", "obsidian", "opal", "orderly",
	"patient", "patterned", "polished", "prismatic", "quiet",
	"radiant", "resolute", "rustic", "sapphire", "serene",
	"silent", "speckled", "steadfast", "swift", "tessellated",
	"tidy", "tiled", "tranquil", "vigilant", "vivid",
	"wise", "woven", "zealous",
}

// Nouns drawn from geometry, materials, and computing themes
var nouns = []string{
	// Geometry and tiling
	"tile", "mosaic", "lattice", "hexagon", "octagon",
	"pentagon", "polygon", "prism", "tessera", "facet",
	"vertex", "edge", "plane", "grid", "mesh",
	"honeycomb", "spiral", "helix", "torus", "sphere",

	// Materials and minerals
	"marble", "granite", "basalt", "quartz", "ceramic",
	"porcelain", "enamel", "glass", "crystal", "amber",
	"onyx", "agate", "jasper", "slate", "terracotta",
	"obsidian", "topaz", "garnet", "beryl", "opal",

	// Computing
	"circuit", "kernel", "daemon", "thread", "pipeline",
	"buffer", "ledger", "beacon", "relay", "gateway",
	"router", "cluster", "node", "shard", "vault",
	"cipher", "token", "anchor", "conduit", "registry",

	// Birds and animals
	"falcon", "heron", "kestrel", "magpie", "osprey",
	"raven", "sparrow", "swift", "wren", "lynx",
	"otter", "badger", "marten", "stoat", "fox",
}

// Generate returns a random "adjective-noun" name suitable for use as a node
// identifier (e.g. "prismatic-falcon", "tiled-kernel").
func Generate() string {
	adjective := adjectives[randomIndex(len(adjectives))]
	noun := nouns[randomIndex(len(nouns))]
	return fmt.Sprintf("%s-%s", adjective, noun)
}

// randomIndex returns a random index below max using crypto/rand, falling
// back to 0 if the random source fails.
func randomIndex(max int) int {
	if max <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}

	return int(n.Int64())
}
