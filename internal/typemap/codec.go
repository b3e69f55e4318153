// Package typemap implements C3: serializing and deserializing a mapping
// from item id to its inferred type, so a downstream package can reuse an
// upstream package's types without re-running inference (§4.3, §6, §8
// scenario 5).
//
// The on-disk format is a fixed-int encoding — explicitly not LEB128 (§4.3)
// — framed as a 4-byte magic number, a 1-byte version, then the payload,
// the usual shape for a small versioned binary container. Where a format
// like that often hands its payload to a generic codec such as
// encoding/gob, the type map format is simpler and fully specified by
// §4.3, so it's hand-rolled over encoding/binary instead: a
// length-prefixed list of (id, type tree) pairs with every integer
// written at a fixed width.
package typemap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/types"
)

var magic = [4]byte{'S', 'H', 'T', 'M'} // "SHTM" = shade type map

const formatVersion byte = 1

// Store serializes the flattened {item_id -> type} mapping reachable from a
// package's module tree (§4.3) to path.
func Store(path string, arena *types.Arena, mapping map[ids.ID]*types.Type) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return fmt.Errorf("typemap: store %s: %w", path, ferr)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeMapping(w, mapping); err != nil {
		return fmt.Errorf("typemap: store %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("typemap: store %s: %w", path, err)
	}
	return nil
}

// Load deserializes a type map produced by Store, re-interning every Type
// node into arena as it is read so pointer identity holds within the
// current compilation (§4.3, §8 scenario 5).
func Load(path string, arena *types.Arena) (map[ids.ID]*types.Type, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("typemap: load %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	mapping, err := readMapping(r, arena)
	if err != nil {
		return nil, fmt.Errorf("typemap: load %s: %w", path, err)
	}
	return mapping, nil
}

func writeMapping(w io.Writer, mapping map[ids.ID]*types.Type) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{formatVersion}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(mapping))); err != nil {
		return err
	}
	enc := &encoder{w: w}
	// Deterministic order (sorted by id bytes) keeps Store's output
	// reproducible across runs, which the round-trip property (§8) relies
	// on being checkable byte-for-byte.
	for _, id := range sortedIDs(mapping) {
		if err := enc.writeID(id); err != nil {
			return err
		}
		if err := enc.writeType(mapping[id]); err != nil {
			return err
		}
	}
	return nil
}

func readMapping(r io.Reader, arena *types.Arena) (map[ids.ID]*types.Type, error) {
	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("bad magic number %x, want %x", gotMagic, magic)
	}
	var version [1]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version[0] != formatVersion {
		return nil, fmt.Errorf("unsupported type map version %d (this build supports %d)", version[0], formatVersion)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	dec := &decoder{r: r, arena: arena}
	mapping := make(map[ids.ID]*types.Type, count)
	for i := uint32(0); i < count; i++ {
		id, err := dec.readID()
		if err != nil {
			return nil, fmt.Errorf("entry %d: read id: %w", i, err)
		}
		t, err := dec.readType()
		if err != nil {
			return nil, fmt.Errorf("entry %d: read type: %w", i, err)
		}
		mapping[id] = t
	}
	return mapping, nil
}

func sortedIDs(mapping map[ids.ID]*types.Type) []ids.ID {
	out := make([]ids.ID, 0, len(mapping))
	for id := range mapping {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

func sortIDs(s []ids.ID) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && lessID(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func lessID(a, b ids.ID) bool {
	ab, _ := a.MarshalBinary()
	bb, _ := b.MarshalBinary()
	for i := range ab {
		if ab[i] != bb[i] {
			return ab[i] < bb[i]
		}
	}
	return false
}
