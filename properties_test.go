package dedokoro

import (
	"reflect"
	"testing"
)

func TestProperties_Put(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		p := NewProperties()
		p.Put("b", Track(1, Origin{}))
		p.Put("a", Track(2, Origin{}))
		p.Put("c", Track(3, Origin{}))

		want := []string{"b", "a", "c"}
		if got := p.Keys(); !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("replace keeps first position", func(t *testing.T) {
		p := NewProperties()
		p.Put("a", Track(1, Origin{}))
		p.Put("b", Track(2, Origin{}))
		p.Put("a", Track(3, Origin{}))

		want := []string{"a", "b"}
		if got := p.Keys(); !reflect.DeepEqual(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
		v, ok := p.Get("a")
		if !ok {
			t.Fatal("Get(a) not found")
		}
		if v.Value != 3 {
			t.Errorf("Get(a).Value = %v, want 3", v.Value)
		}
		if p.Len() != 2 {
			t.Errorf("Len() = %d, want 2", p.Len())
		}
	})
}

func TestProperties_Get(t *testing.T) {
	p := NewProperties()
	origin := Origin{Source: "test.yaml", Location: Location{Line: 1, Column: 5}}
	p.Put("server.port", Track(8080, origin))

	v, ok := p.Get("server.port")
	if !ok {
		t.Fatal("Get(server.port) not found")
	}
	if v.Value != 8080 {
		t.Errorf("Value = %v, want 8080", v.Value)
	}
	if v.Origin != origin {
		t.Errorf("Origin = %v, want %v", v.Origin, origin)
	}

	if _, ok := p.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
}

func TestProperties_Has(t *testing.T) {
	p := NewProperties()
	p.Put("a", Track("", Origin{}))

	if !p.Has("a") {
		t.Error("Has(a) = false")
	}
	if p.Has("b") {
		t.Error("Has(b) = true")
	}
}

func TestProperties_Keys(t *testing.T) {
	p := NewProperties()
	p.Put("a", Track(1, Origin{}))

	keys := p.Keys()
	keys[0] = "mutated"
	if got := p.Keys()[0]; got != "a" {
		t.Errorf("Keys() shares backing array, got %q", got)
	}
}

func TestProperties_Walk(t *testing.T) {
	p := NewProperties()
	p.Put("a", Track(1, Origin{}))
	p.Put("b", Track(2, Origin{}))
	p.Put("c", Track(3, Origin{}))

	t.Run("full walk", func(t *testing.T) {
		var keys []string
		p.Walk(func(key string, value TrackedValue) bool {
			keys = append(keys, key)
			return true
		})
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(keys, want) {
			t.Errorf("Walk visited %v, want %v", keys, want)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		var visited int
		p.Walk(func(key string, value TrackedValue) bool {
			visited++
			return false
		})
		if visited != 1 {
			t.Errorf("Walk visited %d keys, want 1", visited)
		}
	})
}

func TestProperties_Len(t *testing.T) {
	p := NewProperties()
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	p.Put("a", Track(1, Origin{}))
	p.Put("b", Track(2, Origin{}))
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}
