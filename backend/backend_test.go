package backend

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	// Software backends are auto-registered via init()
	for _, name := range []string{BackendSoftware, BackendSoftwareGL1} {
		if !IsRegistered(name) {
			t.Errorf("%s backend should be auto-registered", name)
		}
	}

	c := Get(BackendSoftware)
	if c == nil {
		t.Fatal("Get(software) returned nil")
	}
	if c.Name() != BackendSoftware {
		t.Errorf("Get(software).Name() = %q, want %q", c.Name(), BackendSoftware)
	}
	if got := Get(BackendSoftwareGL1).Caps().Version; got != 1 {
		t.Errorf("software-gl1 Version = %d, want 1", got)
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	if c := Get("nonexistent"); c != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryOpen(t *testing.T) {
	c, err := Open(BackendSoftware)
	if err != nil {
		t.Fatalf("Open(software) error = %v", err)
	}
	if c == nil {
		t.Fatal("Open(software) returned nil context")
	}

	_, err = Open("nonexistent")
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
	var nae *NotAvailableError
	if !errors.As(err, &nae) || nae.Name != "nonexistent" {
		t.Errorf("Open(nonexistent) error = %#v, want NotAvailableError{nonexistent}", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	available := Available()
	if !slices.Contains(available, BackendSoftware) {
		t.Errorf("Available() = %v, should include %q", available, BackendSoftware)
	}
	if !slices.IsSorted(available) {
		t.Errorf("Available() = %v, want sorted", available)
	}
}

func TestRegistryDefault(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	// The version-2 software context outranks the version-1 one.
	if DefaultName() != BackendSoftware {
		t.Logf("DefaultName() = %q (may vary based on available backends)", DefaultName())
	}
}

func TestRegistryMustDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if MustDefault() == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-backend", func() Context {
		return NewSoftware(DefaultSoftwareConfig())
	})

	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")

	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func TestCapsAtLeast2(t *testing.T) {
	if (Caps{Version: 1}).AtLeast2() {
		t.Error("version 1 should not be AtLeast2")
	}
	if !(Caps{Version: 2}).AtLeast2() {
		t.Error("version 2 should be AtLeast2")
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{Width: 10, Height: 10}, false},
		{Rect{Width: 0, Height: 10}, true},
		{Rect{Width: 10, Height: -1}, true},
		{Rect{X: 5, Y: 5, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}
