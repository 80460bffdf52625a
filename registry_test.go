package fbo

import (
	"sync"
	"testing"
)

func TestTextureRegistry(t *testing.T) {
	r := NewTextureRegistry()
	a := &Framebuffer{id: 1}
	b := &Framebuffer{id: 2}
	ac := &TextureView{fb: a, prop: PropertyColor}
	ad := &TextureView{fb: a, prop: PropertyDepth}
	bc := &TextureView{fb: b, prop: PropertyColor}

	r.Register(ac)
	r.Register(ad)
	r.Register(bc)
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	if v, ok := r.Lookup(a, PropertyDepth); !ok || v != ad {
		t.Errorf("Lookup(a, depth) = %v, %v", v, ok)
	}
	if _, ok := r.Lookup(b, PropertyDepth); ok {
		t.Error("Lookup(b, depth) found a view that was never registered")
	}

	// Replacing keeps one entry per key.
	ac2 := &TextureView{fb: a, prop: PropertyColor}
	r.Register(ac2)
	if v, _ := r.Lookup(a, PropertyColor); v != ac2 || r.Len() != 3 {
		t.Errorf("Register should replace: got %p, Len() = %d", v, r.Len())
	}

	r.Unregister(a, PropertyColor)
	r.Unregister(a, PropertyDepth)
	r.Unregister(a, PropertyDepth) // no-op
	if r.Len() != 1 {
		t.Errorf("Len() = %d after Unregister, want 1", r.Len())
	}
	if _, ok := r.Lookup(b, PropertyColor); !ok {
		t.Error("Unregister removed another framebuffer's view")
	}
}

func TestTextureRegistryConcurrent(t *testing.T) {
	r := NewTextureRegistry()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			fb := &Framebuffer{id: id}
			for range 100 {
				r.Register(&TextureView{fb: fb, prop: PropertyColor})
				r.Lookup(fb, PropertyColor)
				r.Unregister(fb, PropertyColor)
			}
		}(uint64(i + 1))
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestPropertyString(t *testing.T) {
	if PropertyColor.String() != "color" || PropertyDepth.String() != "depth" {
		t.Errorf("String() = %q, %q", PropertyColor, PropertyDepth)
	}
}
