package mangle

import "testing"

func TestNameOfRawExports(t *testing.T) {
	cases := []struct {
		name               string
		noMangle, main     bool
		wantRaw            string
	}{
		{"no_mangle_wins", true, false, "entry_point"},
		{"main_wins", false, true, "entry_point"},
		{"both_attrs", true, true, "entry_point"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NameOf("geo", "entry_point", c.noMangle, c.main)
			if got != c.wantRaw {
				t.Fatalf("NameOf = %q, want %q", got, c.wantRaw)
			}
		})
	}
}

func TestNameOfMangledComposesModuleAndItem(t *testing.T) {
	got := NameOf("geo", "area", false, false)
	want := Encode([]string{"geo", "area"})
	if got != want {
		t.Fatalf("NameOf = %q, want %q", got, want)
	}
	if got != "_S3geo4area" {
		t.Fatalf("NameOf = %q, want _S3geo4area", got)
	}
}

func TestNameOfWithNestedModulePath(t *testing.T) {
	got := NameOf("pkg.geo", "area", false, false)
	want := "_S3pkg3geo4area"
	if got != want {
		t.Fatalf("NameOf = %q, want %q", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	components := []string{"pkg", "geo", "area"}
	encoded := Encode(components)
	decoded, ok := Decode(encoded)
	if !ok {
		t.Fatalf("Decode(%q) failed", encoded)
	}
	if len(decoded) != len(components) {
		t.Fatalf("Decode = %v, want %v", decoded, components)
	}
	for i := range components {
		if decoded[i] != components[i] {
			t.Fatalf("Decode[%d] = %q, want %q", i, decoded[i], components[i])
		}
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, ok := Decode("not_mangled"); ok {
		t.Fatalf("Decode accepted a non-mangled string")
	}
	if _, ok := Decode("_S99x"); ok {
		t.Fatalf("Decode accepted a truncated length-prefixed component")
	}
}
