package names

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	name := Generate()

	if name == "" {
		t.Fatal("Generate() returned empty string")
	}

	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		t.Fatalf("Generate() returned name with wrong format (expected adjective-noun): %s", name)
	}

	adjective, noun := parts[0], parts[1]
	if adjective == "" || noun == "" {
		t.Fatalf("Generate() returned name with empty parts: %s", name)
	}

	found := false
	for _, a := range adjectives {
		if a == adjective {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Generate() returned unknown adjective: %s", adjective)
	}
}

// TestGenerateVariety checks the generator is not stuck on a single name.
func TestGenerateVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[Generate()] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected varied names across 50 generations, got %d unique", len(seen))
	}
}

func TestRandomIndexBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		idx := randomIndex(10)
		if idx < 0 || idx >= 10 {
			t.Fatalf("randomIndex(10) out of range: %d", idx)
		}
	}

	if idx := randomIndex(0); idx != 0 {
		t.Errorf("randomIndex(0) = %d, want 0", idx)
	}
}
