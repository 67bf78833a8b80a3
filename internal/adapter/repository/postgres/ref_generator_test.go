package postgres

import (
	"sort"
	"testing"
)

func TestReferenceGeneratorUnique(t *testing.T) {
	gen := NewReferenceGenerator()

	seen := make(map[string]bool)
	for range 1000 {
		ref := gen.Generate()
		if seen[ref] {
			t.Fatalf("duplicate reference %s", ref)
		}
		seen[ref] = true
	}
}

func TestReferenceGeneratorOrdered(t *testing.T) {
	gen := NewReferenceGenerator()

	refs := make([]string, 0, 100)
	for range 100 {
		refs = append(refs, gen.Generate())
	}

	if !sort.StringsAreSorted(refs) {
		t.Fatal("expected references to sort by generation order")
	}
}
