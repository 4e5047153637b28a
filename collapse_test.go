package toon

import "testing"

func TestCollapseChain(t *testing.T) {
	t.Parallel()

	t.Run("collapses a two-level chain", func(t *testing.T) {
		t.Parallel()
		val := Obj().Set("city", Str("Oslo"))
		segments, leaf, ok := collapseChain("address", val, 1<<31-1, map[string]bool{}, map[string]bool{})
		if !ok {
			t.Fatal("expected collapse to apply")
		}
		if len(segments) != 2 || segments[0] != "address" || segments[1] != "city" {
			t.Errorf("segments = %v, want [address city]", segments)
		}
		if leaf.Kind() != KindStr {
			t.Errorf("leaf kind = %v, want string", leaf.Kind())
		}
	})

	t.Run("does not collapse a multi-key object", func(t *testing.T) {
		t.Parallel()
		val := Obj().Set("city", Str("Oslo")).Set("zip", Str("0001"))
		_, _, ok := collapseChain("address", val, 1<<31-1, map[string]bool{}, map[string]bool{})
		if ok {
			t.Fatal("expected no collapse for a multi-key object")
		}
	})

	t.Run("respects flattenDepth", func(t *testing.T) {
		t.Parallel()
		val := Obj().Set("b", Obj().Set("c", Num(1)))
		segments, _, ok := collapseChain("a", val, 2, map[string]bool{}, map[string]bool{})
		if !ok {
			t.Fatal("expected collapse to apply")
		}
		if len(segments) != 2 {
			t.Errorf("segments = %v, want length 2 (depth-capped)", segments)
		}
	})

	t.Run("rejects a sibling key collision", func(t *testing.T) {
		t.Parallel()
		val := Obj().Set("city", Str("Oslo"))
		_, _, ok := collapseChain("address", val, 1<<31-1, map[string]bool{"address.city": true}, map[string]bool{})
		if ok {
			t.Fatal("expected no collapse when dotted key collides with a sibling")
		}
	})

	t.Run("rejects a non-identifier segment", func(t *testing.T) {
		t.Parallel()
		val := Obj().Set("has space", Str("x"))
		_, _, ok := collapseChain("address", val, 1<<31-1, map[string]bool{}, map[string]bool{})
		if ok {
			t.Fatal("expected no collapse when a segment is not a bare identifier")
		}
	})
}
