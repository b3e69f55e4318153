// Package ids defines the opaque identifiers threaded through the resolved
// HIR, the type map, and every later compiler phase.
package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is an opaque stable identifier distinguishing a syntactic entity: an
// item, an expression, or a type reference. It is never compared
// structurally — only for equality and as a map key.
type ID uuid.UUID

// Nil is the zero ID. It never identifies a real entity.
var Nil ID

// New allocates a fresh, process-unique ID.
//
// The resolved-HIR producer (out of core scope, §1) is expected to assign
// stable ids once during name resolution; inside this module New is used
// where HIR is built by hand: cmd/shadec's demo program and the tests.
func New() ID {
	return ID(uuid.New())
}

// String renders the id for diagnostics and debug dumps.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero value.
func (id ID) IsNil() bool {
	return id == Nil
}

// MarshalBinary and UnmarshalBinary let ids flow straight through the
// type-map codec's fixed-width encoding (16 raw bytes, no length prefix).
func (id ID) MarshalBinary() ([]byte, error) {
	b := uuid.UUID(id)
	return b[:], nil
}

func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("ids: UnmarshalBinary: want 16 bytes, got %d", len(data))
	}
	var u uuid.UUID
	copy(u[:], data)
	*id = ID(u)
	return nil
}
