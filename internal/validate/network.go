// Package validate provides network validation utilities for tesserad,
// ensuring addresses supplied on the command line or read from the persisted
// configuration store are well-formed before any network operation runs.
//
// Implements host, port range, and address format validation using the
// go-playground/validator library. Prevents configuration errors that would
// otherwise surface as bind or dial failures deep inside the node runtime.
//
// VALIDATION FEATURES:
//   - Endpoint: "host:port" parsing with port range enforcement
//   - HTTP Endpoint: "http://host:port" parsing for the geth gateway
//   - Node Address: routable host form (hostname or IP)
//   - Peer Lists: many endpoints, order and duplicates preserved
package validate

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Global validator instance using built-in validations
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NetworkEndpoint represents a validated (host, port) pair used for the RPC
// address, peer addresses, and the optional geth gateway. Struct tags drive
// validation through the go-playground/validator library; a port of zero is
// rejected because every endpoint here names a remote or bound service.
type NetworkEndpoint struct {
	Host string `validate:"required,hostname_rfc1123|ip"`
	Port int    `validate:"required,min=1,max=65535"`
}

// String returns the endpoint in standard "host:port" form. Uses
// net.JoinHostPort so IPv6 hosts round-trip through ParseEndpoint.
func (ne NetworkEndpoint) String() string {
	return net.JoinHostPort(ne.Host, strconv.Itoa(ne.Port))
}

// ParseEndpoint parses and validates a "host:port" address string. Returns a
// validated NetworkEndpoint or a descriptive error for a missing colon,
// non-numeric port, out-of-range port, or empty/invalid host.
func ParseEndpoint(addr string) (*NetworkEndpoint, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	endpoint := &NetworkEndpoint{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(endpoint); err != nil {
		return nil, fmt.Errorf("validation failed for '%s': %w", addr, err)
	}

	return endpoint, nil
}

// HTTPEndpoint is a NetworkEndpoint reached over HTTP, carrying the original
// URL form for clients that dial it directly. Used for the external geth
// gateway address.
type HTTPEndpoint struct {
	NetworkEndpoint

	// URL is the normalized "http://host:port" form.
	URL string
}

// ParseHTTPEndpoint parses and validates an "http://host:port" address
// string. Only the http scheme is accepted; the gateway listens on plain
// HTTP and a https:// value almost always indicates a typo in the operator's
// invocation.
func ParseHTTPEndpoint(raw string) (*HTTPEndpoint, error) {
	if raw == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL '%s': %w", raw, err)
	}

	if u.Scheme != "http" {
		return nil, fmt.Errorf("invalid scheme '%s' in '%s': expected http://<host>:<port>", u.Scheme, raw)
	}

	endpoint, err := ParseEndpoint(u.Host)
	if err != nil {
		return nil, err
	}

	return &HTTPEndpoint{
		NetworkEndpoint: *endpoint,
		URL:             fmt.Sprintf("http://%s", endpoint.String()),
	}, nil
}

// ParseNodeAddress validates a bare host string as a routable address form
// (hostname or IP, no port). Returns the host unchanged on success.
func ParseNodeAddress(host string) (string, error) {
	if host == "" {
		return "", fmt.Errorf("node address cannot be empty")
	}

	if err := validate.Var(host, "hostname_rfc1123|ip"); err != nil {
		return "", fmt.Errorf("invalid node address '%s': %w", host, err)
	}

	return host, nil
}

// ValidateField validates individual values against specified validation
// rules using the go-playground/validator library. Supports all built-in
// validation tags.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ParsePeerList parses multiple "host:port" peer addresses. Order is
// preserved and duplicates are kept: the node runtime decides how to weigh
// repeated peers, not the parser. Any single malformed entry fails the whole
// list with its index for operator-friendly reporting.
func ParsePeerList(addresses []string) ([]NetworkEndpoint, error) {
	peers := make([]NetworkEndpoint, 0, len(addresses))

	for i, addr := range addresses {
		endpoint, err := ParseEndpoint(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid peer at index %d: %w", i, err)
		}
		peers = append(peers, *endpoint)
	}

	return peers, nil
}
