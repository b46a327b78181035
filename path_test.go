package fieldflow_test

import (
	"testing"

	fieldflow "github.com/arborcrm/fieldflow"
)

func TestPath_String(t *testing.T) {
	p := fieldflow.Path{}.Field("addresses").Index(0).Field("postcode")
	if got := p.String(); got != "addresses.[0].postcode" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if got := (fieldflow.Path{}).String(); got != "" {
		t.Fatalf("root path should render empty, got %q", got)
	}
}

func TestPath_ChainSafe(t *testing.T) {
	base := fieldflow.Path{}.Field("a")
	p1 := base.Field("b")
	p2 := base.Field("c")
	if p1.String() != "a.b" || p2.String() != "a.c" {
		t.Fatalf("chained paths alias each other: %q / %q", p1, p2)
	}
}

func TestParsePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"first_name", "first_name"},
		{"addresses.[0].postcode", "addresses.[0].postcode"},
		{"addresses[0].postcode", "addresses.[0].postcode"},
		{"settings[2]", "settings.[2]"},
		{"", ""},
	}
	for _, tc := range cases {
		p, err := fieldflow.ParsePath(tc.in)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", tc.in, err)
		}
		if got := p.String(); got != tc.want {
			t.Fatalf("ParsePath(%q) rendered %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, in := range []string{"a..b", "a[", "a[x]", "a[-1]"} {
		if _, err := fieldflow.ParsePath(in); err == nil {
			t.Fatalf("ParsePath(%q) should fail", in)
		}
	}
}
