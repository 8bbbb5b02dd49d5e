// Package validate tests cover endpoint parsing round-trips and rejection of
// malformed address forms: missing colon, non-numeric port, out-of-range
// port, and empty host.
package validate

import (
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		expectError bool
		wantHost    string
		wantPort    int
	}{
		{
			name:     "ipv4_with_port",
			addr:     "127.0.0.1:61000",
			wantHost: "127.0.0.1",
			wantPort: 61000,
		},
		{
			name:     "hostname_with_port",
			addr:     "node1.tessera.network:40102",
			wantHost: "node1.tessera.network",
			wantPort: 40102,
		},
		{
			name:     "wildcard_with_port",
			addr:     "0.0.0.0:8545",
			wantHost: "0.0.0.0",
			wantPort: 8545,
		},
		{
			name:        "missing_colon",
			addr:        "127.0.0.1",
			expectError: true,
		},
		{
			name:        "non_numeric_port",
			addr:        "127.0.0.1:http",
			expectError: true,
		},
		{
			name:        "port_out_of_range",
			addr:        "127.0.0.1:70000",
			expectError: true,
		},
		{
			name:        "port_zero",
			addr:        "127.0.0.1:0",
			expectError: true,
		},
		{
			name:        "empty_host",
			addr:        ":61000",
			expectError: true,
		},
		{
			name:        "empty_string",
			addr:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := ParseEndpoint(tt.addr)

			if tt.expectError {
				if err == nil {
					t.Errorf("ParseEndpoint(%q) expected error, got %+v", tt.addr, endpoint)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseEndpoint(%q) unexpected error: %v", tt.addr, err)
			}
			if endpoint.Host != tt.wantHost {
				t.Errorf("host = %q, want %q", endpoint.Host, tt.wantHost)
			}
			if endpoint.Port != tt.wantPort {
				t.Errorf("port = %d, want %d", endpoint.Port, tt.wantPort)
			}
		})
	}
}

// Well-formed addresses must survive a parse/format round-trip unchanged.
func TestEndpointRoundTrip(t *testing.T) {
	addrs := []string{
		"127.0.0.1:61000",
		"10.0.0.5:40102",
		"geth.example.com:8545",
	}

	for _, addr := range addrs {
		endpoint, err := ParseEndpoint(addr)
		if err != nil {
			t.Fatalf("ParseEndpoint(%q) unexpected error: %v", addr, err)
		}
		if got := endpoint.String(); got != addr {
			t.Errorf("round-trip of %q produced %q", addr, got)
		}
	}
}

func TestParseHTTPEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
		wantURL     string
	}{
		{
			name:    "http_ipv4",
			raw:     "http://127.0.0.1:8545",
			wantURL: "http://127.0.0.1:8545",
		},
		{
			name:    "http_hostname",
			raw:     "http://geth.example.com:8545",
			wantURL: "http://geth.example.com:8545",
		},
		{
			name:        "https_rejected",
			raw:         "https://127.0.0.1:8545",
			expectError: true,
		},
		{
			name:        "no_scheme",
			raw:         "127.0.0.1:8545",
			expectError: true,
		},
		{
			name:        "missing_port",
			raw:         "http://127.0.0.1",
			expectError: true,
		},
		{
			name:        "empty",
			raw:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := ParseHTTPEndpoint(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Errorf("ParseHTTPEndpoint(%q) expected error, got %+v", tt.raw, endpoint)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseHTTPEndpoint(%q) unexpected error: %v", tt.raw, err)
			}
			if endpoint.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", endpoint.URL, tt.wantURL)
			}
		})
	}
}

func TestParseNodeAddress(t *testing.T) {
	tests := []struct {
		name        string
		host        string
		expectError bool
	}{
		{name: "ipv4", host: "192.168.1.10"},
		{name: "hostname", host: "node1.tessera.network"},
		{name: "empty", host: "", expectError: true},
		{name: "spaces", host: "not a host", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNodeAddress(tt.host)

			if tt.expectError {
				if err == nil {
					t.Errorf("ParseNodeAddress(%q) expected error", tt.host)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseNodeAddress(%q) unexpected error: %v", tt.host, err)
			}
			if got != tt.host {
				t.Errorf("ParseNodeAddress(%q) = %q, host must pass through unchanged", tt.host, got)
			}
		})
	}
}

func TestParsePeerList(t *testing.T) {
	// Duplicates are preserved in order, not deduplicated
	peers, err := ParsePeerList([]string{
		"10.0.0.1:40102",
		"10.0.0.2:40102",
		"10.0.0.1:40102",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peers) != 3 {
		t.Fatalf("expected 3 peers, got %d", len(peers))
	}
	if peers[0].String() != "10.0.0.1:40102" ||
		peers[1].String() != "10.0.0.2:40102" ||
		peers[2].String() != "10.0.0.1:40102" {
		t.Errorf("peer order or duplicates not preserved: %v", peers)
	}

	// One malformed entry fails the whole list
	if _, err := ParsePeerList([]string{"10.0.0.1:40102", "bogus"}); err == nil {
		t.Error("expected error for malformed peer entry")
	}

	// Empty list is valid: peers are optional
	peers, err = ParsePeerList(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty list: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("expected empty result, got %v", peers)
	}
}
