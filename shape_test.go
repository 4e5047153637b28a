package toon

import "testing"

func TestAnalyzeShape(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc       string
		arr        []Value
		wantShape  arrayShape
		wantFields []string
	}{
		{desc: "empty", arr: nil, wantShape: shapeEmpty},
		{
			desc:      "all primitive",
			arr:       []Value{Num(1), Str("x"), Bool(true), Null()},
			wantShape: shapeInlinePrimitive,
		},
		{
			desc: "uniform objects",
			arr: []Value{
				Obj().Set("id", Num(1)).Set("name", Str("a")),
				Obj().Set("id", Num(2)).Set("name", Str("b")),
			},
			wantShape:  shapeTabularUniform,
			wantFields: []string{"id", "name"},
		},
		{
			desc: "objects with differing key order are not tabular",
			arr: []Value{
				Obj().Set("id", Num(1)).Set("name", Str("a")),
				Obj().Set("name", Str("b")).Set("id", Num(2)),
			},
			wantShape: shapeList,
		},
		{
			desc: "objects with a nested value are not tabular",
			arr: []Value{
				Obj().Set("id", Num(1)).Set("child", Obj().Set("x", Num(1))),
				Obj().Set("id", Num(2)).Set("child", Obj().Set("x", Num(2))),
			},
			wantShape: shapeList,
		},
		{
			desc:      "mixed primitive and object",
			arr:       []Value{Num(1), Obj().Set("a", Num(1))},
			wantShape: shapeList,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			shape, fields := analyzeShape(tc.arr)
			if shape != tc.wantShape {
				t.Errorf("shape = %v, want %v", shape, tc.wantShape)
			}
			if tc.wantFields != nil {
				if len(fields) != len(tc.wantFields) {
					t.Fatalf("fields = %v, want %v", fields, tc.wantFields)
				}
				for i, f := range tc.wantFields {
					if fields[i] != f {
						t.Errorf("fields[%d] = %q, want %q", i, fields[i], f)
					}
				}
			}
		})
	}
}
