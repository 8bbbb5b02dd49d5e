package configstore

import (
	"github.com/tessera-network/tesserad/internal/validate"
)

// Overlay carries the CLI-supplied fields that override the persisted store.
// Nil/empty fields mean "not given on the command line" and leave the stored
// value untouched.
type Overlay struct {
	RPCAddress  *validate.NetworkEndpoint
	NodeAddress string
}

// Resolve loads the persisted store from dataDir and applies the CLI overlay
// on top. CLI values always win over stored ones; fields absent from the
// overlay keep whatever the store (or its defaults) provided.
func Resolve(dataDir string, overlay Overlay) (*Descriptor, error) {
	desc, err := Load(dataDir)
	if err != nil {
		return nil, err
	}

	if overlay.RPCAddress != nil {
		desc.RPCAddress = overlay.RPCAddress.Host
		desc.RPCPort = overlay.RPCAddress.Port
	}

	if overlay.NodeAddress != "" {
		desc.NodeAddress = overlay.NodeAddress
	}

	return desc, nil
}
