package typemap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/types"
)

// Wire tags for each Kind. Stored as a single byte; stable across versions
// of this format version only (§4.3: "Compatibility is not guaranteed
// across compiler versions").
const (
	tagError byte = iota
	tagNever
	tagBool
	tagStr
	tagTypeID
	tagInt
	tagUInt
	tagFloat
	tagVar
	tagVInt
	tagVUInt
	tagVFloat
	tagRef
	tagArray
	tagSlice
	tagTuple
	tagFunc
	tagStruct
	tagEnum
	tagTypeOf
	tagObject
)

type encoder struct {
	w io.Writer
}

func (e *encoder) writeByte(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

func (e *encoder) writeU32(v uint32) error {
	return binary.Write(e.w, binary.LittleEndian, v)
}

func (e *encoder) writeU64(v uint64) error {
	return binary.Write(e.w, binary.LittleEndian, v)
}

func (e *encoder) writeString(s string) error {
	if err := e.writeU32(uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) writeID(id ids.ID) error {
	b, err := id.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

func (e *encoder) writeFields(fields *types.List[types.Field]) error {
	if err := e.writeU32(uint32(fields.Len())); err != nil {
		return err
	}
	for i := 0; i < fields.Len(); i++ {
		f := fields.At(i)
		if err := e.writeString(f.Name); err != nil {
			return err
		}
		if err := e.writeType(f.Type); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeType(t *types.Type) error {
	switch t.Kind() {
	case types.KError:
		return e.writeByte(tagError)
	case types.KNever:
		return e.writeByte(tagNever)
	case types.KBool:
		return e.writeByte(tagBool)
	case types.KStr:
		return e.writeByte(tagStr)
	case types.KTypeID:
		return e.writeByte(tagTypeID)
	case types.KObject:
		return e.writeByte(tagObject)
	case types.KInt:
		if err := e.writeByte(tagInt); err != nil {
			return err
		}
		return e.writeU32(uint32(t.Width()))
	case types.KUInt:
		if err := e.writeByte(tagUInt); err != nil {
			return err
		}
		return e.writeU32(uint32(t.Width()))
	case types.KFloat:
		if err := e.writeByte(tagFloat); err != nil {
			return err
		}
		return e.writeU32(uint32(t.Width()))
	case types.KVar:
		if err := e.writeByte(tagVar); err != nil {
			return err
		}
		return e.writeU32(uint32(t.VarIndex()))
	case types.KVInt:
		if err := e.writeByte(tagVInt); err != nil {
			return err
		}
		return e.writeU32(uint32(t.VarIndex()))
	case types.KVUInt:
		if err := e.writeByte(tagVUInt); err != nil {
			return err
		}
		return e.writeU32(uint32(t.VarIndex()))
	case types.KVFloat:
		if err := e.writeByte(tagVFloat); err != nil {
			return err
		}
		return e.writeU32(uint32(t.VarIndex()))
	case types.KRef:
		if err := e.writeByte(tagRef); err != nil {
			return err
		}
		mut := byte(0)
		if t.Mut() {
			mut = 1
		}
		if err := e.writeByte(mut); err != nil {
			return err
		}
		return e.writeType(t.Elem())
	case types.KArray:
		if err := e.writeByte(tagArray); err != nil {
			return err
		}
		if err := e.writeU64(t.ArrayLen()); err != nil {
			return err
		}
		return e.writeType(t.Elem())
	case types.KSlice:
		if err := e.writeByte(tagSlice); err != nil {
			return err
		}
		return e.writeType(t.Elem())
	case types.KTuple:
		if err := e.writeByte(tagTuple); err != nil {
			return err
		}
		elems := t.TupleElems()
		if err := e.writeU32(uint32(elems.Len())); err != nil {
			return err
		}
		for i := 0; i < elems.Len(); i++ {
			if err := e.writeType(elems.At(i)); err != nil {
				return err
			}
		}
		return nil
	case types.KFunc:
		if err := e.writeByte(tagFunc); err != nil {
			return err
		}
		params := t.FuncParams()
		if err := e.writeU32(uint32(params.Len())); err != nil {
			return err
		}
		for i := 0; i < params.Len(); i++ {
			p := params.At(i)
			if err := e.writeString(p.Name); err != nil {
				return err
			}
			if err := e.writeType(p.Type); err != nil {
				return err
			}
		}
		return e.writeType(t.FuncResult())
	case types.KStruct:
		if err := e.writeByte(tagStruct); err != nil {
			return err
		}
		if err := e.writeID(t.NominalID()); err != nil {
			return err
		}
		return e.writeFields(t.StructFields())
	case types.KEnum:
		if err := e.writeByte(tagEnum); err != nil {
			return err
		}
		if err := e.writeID(t.NominalID()); err != nil {
			return err
		}
		variants := t.EnumVariants()
		if err := e.writeU32(uint32(variants.Len())); err != nil {
			return err
		}
		for i := 0; i < variants.Len(); i++ {
			v := variants.At(i)
			if err := e.writeString(v.Name); err != nil {
				return err
			}
			hasFields := byte(0)
			if v.Fields != nil {
				hasFields = 1
			}
			if err := e.writeByte(hasFields); err != nil {
				return err
			}
			if hasFields == 1 {
				if err := e.writeFields(v.Fields); err != nil {
					return err
				}
			}
		}
		return nil
	case types.KTypeOf:
		if err := e.writeByte(tagTypeOf); err != nil {
			return err
		}
		return e.writeID(t.NominalID())
	default:
		return fmt.Errorf("typemap: unknown type kind %v", t.Kind())
	}
}

type decoder struct {
	r     io.Reader
	arena *types.Arena
}

func (d *decoder) readByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(d.r, b[:])
	return b[0], err
}

func (d *decoder) readU32() (uint32, error) {
	var v uint32
	err := binary.Read(d.r, binary.LittleEndian, &v)
	return v, err
}

func (d *decoder) readU64() (uint64, error) {
	var v uint64
	err := binary.Read(d.r, binary.LittleEndian, &v)
	return v, err
}

func (d *decoder) readString() (string, error) {
	n, err := d.readU32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *decoder) readID() (ids.ID, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return ids.Nil, err
	}
	var id ids.ID
	if err := id.UnmarshalBinary(buf); err != nil {
		return ids.Nil, err
	}
	return id, nil
}

func (d *decoder) readFields() ([]types.Field, error) {
	n, err := d.readU32()
	if err != nil {
		return nil, err
	}
	fields := make([]types.Field, n)
	for i := range fields {
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		ty, err := d.readType()
		if err != nil {
			return nil, err
		}
		fields[i] = types.Field{Name: name, Type: ty}
	}
	return fields, nil
}

// readType decodes one type tree, re-interning every node into d.arena as
// it reads (§4.3: "re-interning each Type as it is read... so pointer
// identity is preserved inside the current compilation").
func (d *decoder) readType() (*types.Type, error) {
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagError:
		return d.arena.ErrorType(), nil
	case tagNever:
		return d.arena.NeverType(), nil
	case tagBool:
		return d.arena.BoolType(), nil
	case tagStr:
		return d.arena.StrType(), nil
	case tagTypeID:
		return d.arena.TypeIDType(), nil
	case tagObject:
		return d.arena.ObjectType(), nil
	case tagInt:
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.Int(int(n)), nil
	case tagUInt:
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.UInt(int(n)), nil
	case tagFloat:
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.Float(int(n)), nil
	case tagVar:
		k, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.Var(int(k)), nil
	case tagVInt:
		k, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.VInt(int(k)), nil
	case tagVUInt:
		k, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.VUInt(int(k)), nil
	case tagVFloat:
		k, err := d.readU32()
		if err != nil {
			return nil, err
		}
		return d.arena.VFloat(int(k)), nil
	case tagRef:
		mb, err := d.readByte()
		if err != nil {
			return nil, err
		}
		elem, err := d.readType()
		if err != nil {
			return nil, err
		}
		return d.arena.Ref(mb == 1, elem), nil
	case tagArray:
		n, err := d.readU64()
		if err != nil {
			return nil, err
		}
		elem, err := d.readType()
		if err != nil {
			return nil, err
		}
		return d.arena.Array(elem, n), nil
	case tagSlice:
		elem, err := d.readType()
		if err != nil {
			return nil, err
		}
		return d.arena.Slice(elem), nil
	case tagTuple:
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		elems := make([]*types.Type, n)
		for i := range elems {
			elems[i], err = d.readType()
			if err != nil {
				return nil, err
			}
		}
		return d.arena.Tuple(elems), nil
	case tagFunc:
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		params := make([]types.Param, n)
		for i := range params {
			name, err := d.readString()
			if err != nil {
				return nil, err
			}
			ty, err := d.readType()
			if err != nil {
				return nil, err
			}
			params[i] = types.Param{Name: name, Type: ty}
		}
		ret, err := d.readType()
		if err != nil {
			return nil, err
		}
		return d.arena.Func(params, ret), nil
	case tagStruct:
		id, err := d.readID()
		if err != nil {
			return nil, err
		}
		fields, err := d.readFields()
		if err != nil {
			return nil, err
		}
		return d.arena.Struct(id, fields), nil
	case tagEnum:
		id, err := d.readID()
		if err != nil {
			return nil, err
		}
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		variants := make([]types.Variant, n)
		for i := range variants {
			name, err := d.readString()
			if err != nil {
				return nil, err
			}
			has, err := d.readByte()
			if err != nil {
				return nil, err
			}
			var fl *types.List[types.Field]
			if has == 1 {
				fields, err := d.readFields()
				if err != nil {
					return nil, err
				}
				fl = d.arena.InternFieldList(fields)
			}
			variants[i] = types.Variant{Name: name, Fields: fl}
		}
		return d.arena.Enum(id, variants), nil
	case tagTypeOf:
		id, err := d.readID()
		if err != nil {
			return nil, err
		}
		return d.arena.TypeOf(id), nil
	default:
		return nil, fmt.Errorf("typemap: unknown wire tag %d", tag)
	}
}
