package pathmatch

import (
	"fmt"
	"testing"
)

func TestCacheBounded(t *testing.T) {
	m := New(WithCacheLimit(2))

	for i := 0; i < 5; i++ {
		pattern := fmt.Sprintf("/p%d", i)
		got, err := m.Match(pattern, Options{Path: pattern}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil {
			t.Fatalf("pattern %q should still match after the cache is full", pattern)
		}
	}

	if got := m.Cache().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestCacheBucketsByOptions(t *testing.T) {
	c := NewCache(10)
	m := New(WithCache(c))

	for _, exact := range []bool{false, true} {
		if _, err := m.Match("/a", Options{Path: "/a", Exact: exact}, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.Match("/a", Options{Path: "/a", Sensitive: true}, nil); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	// Repeated lookups hit the cache.
	if _, err := m.Match("/a/b", Options{Path: "/a"}, nil); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() after hit = %d, want 3", c.Len())
	}
}

func TestCacheReturnsSamePattern(t *testing.T) {
	c := NewCache(10)
	p1, err := c.compile("/x/:id", false, false, false)
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := c.compile("/x/:id", false, false, false)
	if p1 != p2 {
		t.Error("expected cached pattern to be reused")
	}
	p3, _ := c.compile("/x/:id", true, false, false)
	if p1 == p3 {
		t.Error("patterns compiled under different options must not be shared")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache(-1)
	if c.Limit() != 0 {
		t.Errorf("Limit() = %d, want 0", c.Limit())
	}
	if _, err := c.compile("/x", false, false, false); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCacheReset(t *testing.T) {
	c := NewCache(5)
	c.compile("/x", false, false, false)
	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d", c.Len())
	}
}

func TestCompileKeys(t *testing.T) {
	p, err := Compile("/files/:dir/:name?/*", false, false, false)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, k := range p.Keys() {
		names = append(names, k.Name)
	}
	want := []string{"dir", "name", "0"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("keys = %v, want %v", names, want)
	}
	if !p.Keys()[1].Optional {
		t.Error("name should be optional")
	}
	if !p.Keys()[2].Asterisk {
		t.Error("last key should be the asterisk")
	}
	if p.Source() != "/files/:dir/:name?/*" {
		t.Errorf("Source() = %q", p.Source())
	}
}
