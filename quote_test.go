package toon

import "testing"

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc      string
		in        string
		delimiter byte
		want      bool
	}{
		{desc: "empty", in: "", delimiter: ',', want: true},
		{desc: "plain word", in: "hello", delimiter: ',', want: false},
		{desc: "leading space", in: " hello", delimiter: ',', want: true},
		{desc: "trailing space", in: "hello ", delimiter: ',', want: true},
		{desc: "interior space ok", in: "hello world", delimiter: ',', want: false},
		{desc: "literal true", in: "true", delimiter: ',', want: true},
		{desc: "literal null", in: "null", delimiter: ',', want: true},
		{desc: "looks numeric", in: "42", delimiter: ',', want: true},
		{desc: "looks like float", in: "-3.14e10", delimiter: ',', want: true},
		{desc: "contains active delimiter", in: "a,b", delimiter: ',', want: true},
		{desc: "contains inactive delimiter", in: "a,b", delimiter: '|', want: false},
		{desc: "contains colon", in: "a:b", delimiter: ',', want: true},
		{desc: "contains bracket", in: "a[b", delimiter: ',', want: true},
		{desc: "contains brace", in: "a{b", delimiter: ',', want: true},
		{desc: "contains dash", in: "a-b", delimiter: ',', want: true},
		{desc: "contains quote", in: `a"b`, delimiter: ',', want: true},
		{desc: "contains newline", in: "a\nb", delimiter: ',', want: true},
		{desc: "all whitespace", in: "   ", delimiter: ',', want: true},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			if got := needsQuoting(tc.in, tc.delimiter); got != tc.want {
				t.Errorf("needsQuoting(%q, %q) = %v, want %v", tc.in, tc.delimiter, got, tc.want)
			}
		})
	}
}

func TestNeedsKeyQuoting(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc         string
		key          string
		expandUnsafe bool
		want         bool
	}{
		{desc: "plain key", key: "name", expandUnsafe: true, want: false},
		{desc: "dotted key, expansion on", key: "a.b", expandUnsafe: true, want: true},
		{desc: "dotted key, expansion off", key: "a.b", expandUnsafe: false, want: false},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			if got := needsKeyQuoting(tc.key, ',', tc.expandUnsafe); got != tc.want {
				t.Errorf("needsKeyQuoting(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		`hello`,
		"line1\nline2",
		`a "quoted" word`,
		"tab\there",
		`back\slash`,
	} {
		escaped := escape(s)
		got, err := unescapeQuoted(escaped, true)
		if err != nil {
			t.Fatalf("unescapeQuoted(%q) error: %v", escaped, err)
		}
		if got != s {
			t.Errorf("round trip mismatch: got %q, want %q", got, s)
		}
	}
}

func TestUnescapeQuotedBadEscapeStrict(t *testing.T) {
	t.Parallel()

	_, err := unescapeQuoted(`bad\qescape`, true)
	if err == nil {
		t.Fatal("expected error for unrecognized escape in strict mode")
	}
}

func TestUnescapeQuotedBadEscapeNonStrict(t *testing.T) {
	t.Parallel()

	got, err := unescapeQuoted(`bad\qescape`, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `bad\qescape` {
		t.Errorf("got %q, want literal passthrough", got)
	}
}

func TestUnescapeQuotedUnicodeEscape(t *testing.T) {
	t.Parallel()

	input := "caf" + "\\u00e9"
	got, err := unescapeQuoted(input, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q, want %q", got, "café")
	}
}
