// Package target describes the ABI-relevant parameters of a compilation
// target: pointer width, endianness, and primitive alignments (§6).
package target

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Endianness of the target's scalar encoding.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// Target supplies everything the layout engine (C6) needs to turn a Type
// into concrete sizes, and everything the numeric defaulting rule (§3) needs
// to pick a pointer-width signed/unsigned integer type.
type Target struct {
	Triple     string     `yaml:"triple"`
	PointerBits int       `yaml:"pointer_bits"`
	Endian     Endianness `yaml:"-"`
	EndianName string     `yaml:"endian"`

	// Align overrides the default (size-equals-align) alignment for a
	// primitive bit-width, keyed by "i8","i16","i32","i64","i128",
	// "u8",... ,"f32","f64". Absent entries default to natural alignment.
	Align map[string]int `yaml:"align,omitempty"`
}

// PointerWidthInt returns the signed pointer-width int bit count (the `n=0`
// case of Int(n)/UInt(n) in §3).
func (t Target) PointerWidthInt() int { return t.PointerBits }

func (t Target) naturalAlign(bits int) int {
	bytes := bits / 8
	if bytes < 1 {
		bytes = 1
	}
	return bytes
}

// AlignOf returns the alignment in bytes for a scalar of the given kind
// ("i","u","f") and bit width, honoring any Align override.
func (t Target) AlignOf(kind string, bits int) int {
	if bits == 0 {
		bits = t.PointerBits
	}
	key := fmt.Sprintf("%s%d", kind, bits)
	if t.Align != nil {
		if a, ok := t.Align[key]; ok {
			return a
		}
	}
	return t.naturalAlign(bits)
}

// builtins are the compiler's own built-in target descriptions, shipped as
// constants so a caller targeting a common triple never has to supply a
// config file of its own.
var builtins = map[string]Target{
	"x86_64": {
		Triple: "x86_64-unknown-unknown", PointerBits: 64,
		Endian: LittleEndian, EndianName: "little",
	},
	"aarch64": {
		Triple: "aarch64-unknown-unknown", PointerBits: 64,
		Endian: LittleEndian, EndianName: "little",
	},
	"i686": {
		Triple: "i686-unknown-unknown", PointerBits: 32,
		Endian: LittleEndian, EndianName: "little",
	},
}

// Lookup returns a built-in target by short name ("x86_64", "aarch64", "i686").
func Lookup(name string) (Target, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Load reads a target description from a YAML file via yaml.Unmarshal.
// Overlays onto a named built-in if Triple matches one, otherwise stands
// alone.
func Load(path string) (Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Target{}, fmt.Errorf("target: load %s: %w", path, err)
	}
	var probe struct {
		Triple string `yaml:"triple"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Target{}, fmt.Errorf("target: parse %s: %w", path, err)
	}
	var t Target
	for _, b := range builtins {
		if probe.Triple != "" && b.Triple == probe.Triple {
			t = b
			break
		}
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Target{}, fmt.Errorf("target: parse %s: %w", path, err)
	}
	if t.EndianName == "big" {
		t.Endian = BigEndian
	} else {
		t.Endian = LittleEndian
	}
	if t.PointerBits == 0 {
		t.PointerBits = 64
	}
	return t, nil
}
