package wwwauth

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   []Challenge
	}{
		{
			name:   "basic with quoted realm",
			values: []string{`Basic realm="Fake Realm"`},
			want: []Challenge{
				{Scheme: SchemeBasic, Realm: "Fake Realm", Params: map[string]string{"realm": "Fake Realm"}},
			},
		},
		{
			name:   "lowercase scheme and bare realm",
			values: []string{`basic realm=simple`},
			want: []Challenge{
				{Scheme: SchemeBasic, Realm: "simple", Params: map[string]string{"realm": "simple"}},
			},
		},
		{
			name:   "multiple challenges in one value",
			values: []string{`Bearer realm="api", error="invalid_token", Basic realm="Fallback"`},
			want: []Challenge{
				{Scheme: SchemeBearer, Realm: "api", Params: map[string]string{"realm": "api", "error": "invalid_token"}},
				{Scheme: SchemeBasic, Realm: "Fallback", Params: map[string]string{"realm": "Fallback"}},
			},
		},
		{
			name:   "multiple header values",
			values: []string{`Digest realm="d", nonce="n"`, `Basic realm="b"`},
			want: []Challenge{
				{Scheme: SchemeDigest, Realm: "d", Params: map[string]string{"realm": "d", "nonce": "n"}},
				{Scheme: SchemeBasic, Realm: "b", Params: map[string]string{"realm": "b"}},
			},
		},
		{
			name:   "quoted value containing comma and escape",
			values: []string{`Basic realm="a, \"b\""`},
			want: []Challenge{
				{Scheme: SchemeBasic, Realm: `a, "b"`, Params: map[string]string{"realm": `a, "b"`}},
			},
		},
		{
			name:   "scheme without params",
			values: []string{`Negotiate`},
			want: []Challenge{
				{Scheme: "Negotiate", Params: map[string]string{}},
			},
		},
		{
			name:   "empty value",
			values: []string{``},
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.values)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q)\n got %#v\nwant %#v", tc.values, got, tc.want)
			}
		})
	}
}
