// Package version provides centralized version information for the Tessera
// node daemon. The daemon version, the wire schema version, and the default
// protocol identifier live here so that bootstrap, diagnostics, and the node
// runtime all report the same values.
// All versions follow semantic versioning (semver) conventions.
package version

// Version holds the current tesserad daemon version.
// Format: major.minor.patch[-prerelease][+build]
const Version = "0.1.0-dev"

// SchemaVersion is the version of the wire message schema the node speaks.
// Peers exchange this during handshake and reject mismatched schemas.
const SchemaVersion = "2.18.0"

// DefaultProtocolID identifies the protocol sub-network this node joins.
// Nodes only mesh with peers advertising the same protocol identifier.
// Overridable per invocation with --protocol-id.
const DefaultProtocolID = 20
