package platform

import "testing"

func reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Integration)
}

func TestShimNonWindows(t *testing.T) {
	reset()

	shimFor("linux")

	for _, name := range packagedOnly {
		if _, ok := Lookup(name); ok {
			t.Errorf("expected no placeholder for %s on linux", name)
		}
	}
}

func TestShimWindows(t *testing.T) {
	reset()

	shimFor("windows")

	for _, name := range packagedOnly {
		integ, ok := Lookup(name)
		if !ok {
			t.Fatalf("expected placeholder for %s on windows", name)
		}
		if integ.Available() {
			t.Errorf("expected placeholder %s to report unavailable", name)
		}
		if integ.Name() != name {
			t.Errorf("expected placeholder name %s, got: %s", name, integ.Name())
		}
	}
}

// TestShimIdempotent verifies repeated shimming never replaces an existing
// registration.
func TestShimIdempotent(t *testing.T) {
	reset()

	shimFor("windows")
	first, _ := Lookup("com/os")

	shimFor("windows")
	second, _ := Lookup("com/os")

	if first != second {
		t.Error("expected repeated shim to keep the existing registration")
	}
}

// TestRealIntegrationOverwritesPlaceholder verifies Register replaces a
// placeholder with the real implementation.
type fakeIntegration struct{ name string }

func (f *fakeIntegration) Name() string    { return f.name }
func (f *fakeIntegration) Available() bool { return true }

func TestRealIntegrationOverwritesPlaceholder(t *testing.T) {
	reset()

	shimFor("windows")
	Register(&fakeIntegration{name: "com/os"})

	integ, ok := Lookup("com/os")
	if !ok {
		t.Fatal("expected integration for com/os")
	}
	if !integ.Available() {
		t.Error("expected real integration to report available")
	}
}
