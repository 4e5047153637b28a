package toon

import "testing"

func TestParseArrayHeaderLine(t *testing.T) {
	t.Parallel()

	t.Run("inline values", func(t *testing.T) {
		t.Parallel()
		hdr, matched, err := parseArrayHeaderLine("tags[2]: admin,staff", ',', true)
		if err != nil || !matched {
			t.Fatalf("parseArrayHeaderLine error=%v matched=%v", err, matched)
		}
		if hdr.Key != "tags" || !hdr.HasKey || hdr.Length != 2 || hdr.InlineValues != "admin,staff" {
			t.Errorf("hdr = %+v", hdr)
		}
	})

	t.Run("tabular fields", func(t *testing.T) {
		t.Parallel()
		hdr, matched, err := parseArrayHeaderLine("friends[2]{id,name}:", ',', true)
		if err != nil || !matched {
			t.Fatalf("parseArrayHeaderLine error=%v matched=%v", err, matched)
		}
		if len(hdr.Fields) != 2 || hdr.Fields[0] != "id" || hdr.Fields[1] != "name" {
			t.Errorf("fields = %v", hdr.Fields)
		}
	})

	t.Run("unnamed root array", func(t *testing.T) {
		t.Parallel()
		hdr, matched, err := parseArrayHeaderLine("[3]: 1,2,3", ',', true)
		if err != nil || !matched {
			t.Fatalf("parseArrayHeaderLine error=%v matched=%v", err, matched)
		}
		if hdr.HasKey {
			t.Errorf("expected no key, got %q", hdr.Key)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		hdr, matched, err := parseArrayHeaderLine("items[0]:", ',', true)
		if err != nil || !matched {
			t.Fatalf("parseArrayHeaderLine error=%v matched=%v", err, matched)
		}
		if hdr.Length != 0 {
			t.Errorf("length = %d, want 0", hdr.Length)
		}
	})

	t.Run("not an array header", func(t *testing.T) {
		t.Parallel()
		_, matched, err := parseArrayHeaderLine("name: Ada", ',', true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if matched {
			t.Error("expected no match for a plain key-value line")
		}
	})

	t.Run("bad length is an error", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseArrayHeaderLine("items[x]:", ',', true)
		if err == nil {
			t.Fatal("expected error for a non-numeric length")
		}
	})

	t.Run("delimiter autodetected from field list", func(t *testing.T) {
		t.Parallel()
		hdr, matched, err := parseArrayHeaderLine("rows[1]{a\tb}:", ',', true)
		if err != nil || !matched {
			t.Fatalf("parseArrayHeaderLine error=%v matched=%v", err, matched)
		}
		if hdr.Delimiter != '\t' {
			t.Errorf("delimiter = %q, want tab", hdr.Delimiter)
		}
	})
}

func TestPrimitiveToken(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in       string
		wantKind Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"42", KindNum},
		{"-3.5e2", KindNum},
		{`"quoted"`, KindStr},
		{"bareword", KindStr},
	} {
		v, err := primitiveToken(tc.in, true)
		if err != nil {
			t.Fatalf("primitiveToken(%q) error: %v", tc.in, err)
		}
		if v.Kind() != tc.wantKind {
			t.Errorf("primitiveToken(%q) kind = %v, want %v", tc.in, v.Kind(), tc.wantKind)
		}
	}
}

func TestDelimitedValuesRespectsQuoting(t *testing.T) {
	t.Parallel()

	got := delimitedValues(`a,"b,c",d`, ',')
	want := []string{"a", `"b,c"`, "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnquotedIndexByte(t *testing.T) {
	t.Parallel()

	if idx := unquotedIndexByte(`"a:b":c`, ':'); idx != 5 {
		t.Errorf("unquotedIndexByte = %d, want 5", idx)
	}
	if idx := unquotedIndexByte("noColon", ':'); idx != -1 {
		t.Errorf("unquotedIndexByte = %d, want -1", idx)
	}
}

func TestDetectDelimiter(t *testing.T) {
	t.Parallel()

	if got := detectDelimiter("a\tb", ','); got != '\t' {
		t.Errorf("got %q, want tab", got)
	}
	if got := detectDelimiter("a|b", ','); got != '|' {
		t.Errorf("got %q, want pipe", got)
	}
	if got := detectDelimiter("a,b", '|'); got != '|' {
		t.Errorf("got %q, want fallback", got)
	}
}
