package catalog

import "github.com/ccjeff/chogori-platform/mpack"

// FieldType enumerates the field kinds a Schema field may declare. It
// mirrors mpack's built-in scalar kinds directly: a catalog exists so
// that a collection's fields can be validated and addressed by name,
// not to introduce a type system of its own.
type FieldType int32

const (
	FieldTypeNull FieldType = iota
	FieldTypeString
	FieldTypeInt32
	FieldTypeInt64
	FieldTypeFloat64
	FieldTypeBool
	FieldTypeBinary
	FieldTypeDecimal64
	FieldTypeDecimal128
)

// Field describes one column of a Schema: its wire name and its scalar
// kind. Field order is significant — it is the order values are packed
// and unpacked in, matching mpack's fixed-arity Record convention.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the versioned shape of a collection's records: an ordered
// list of fields plus which of them, by name, form the partition key
// and the range key. A schema is itself an mpack.Record, so it can be
// persisted through the same catalog store it describes and shipped to
// a remote node over rpc without a second serialization format.
type Schema struct {
	Name               string
	Version            int32
	Fields             []Field
	PartitionKeyFields []string
	RangeKeyFields     []string
}

// MPackFieldCount reports Schema's five wire fields.
func (s *Schema) MPackFieldCount() int { return 5 }

func (s *Schema) MPackPack(w *mpack.Writer) error {
	if err := w.WriteString(s.Name); err != nil {
		return err
	}
	if err := w.WriteInt32(s.Version); err != nil {
		return err
	}
	if err := mpack.WriteSlice(w, s.Fields, func(f Field) error {
		return mpack.WriteTuple(w,
			func() error { return w.WriteString(f.Name) },
			func() error { return mpack.WriteEnum(w, f.Type) },
		)
	}); err != nil {
		return err
	}
	if err := mpack.WriteSlice(w, s.PartitionKeyFields, w.WriteString); err != nil {
		return err
	}
	return mpack.WriteSlice(w, s.RangeKeyFields, w.WriteString)
}

func (s *Schema) MPackUnpack(sr *mpack.StructReader) error {
	if err := sr.Read(&s.Name, &s.Version); err != nil {
		return err
	}
	fieldsNode, err := sr.Next()
	if err != nil {
		return err
	}
	fields, err := mpack.ReadSlice(fieldsNode, func(n *mpack.NodeReader) (Field, error) {
		var f Field
		err := mpack.ReadTuple(n,
			func(n *mpack.NodeReader) error {
				v, err := n.ReadString()
				f.Name = v
				return err
			},
			func(n *mpack.NodeReader) error {
				v, err := mpack.ReadEnum[FieldType](n)
				f.Type = v
				return err
			},
		)
		return f, err
	})
	if err != nil {
		return err
	}
	s.Fields = fields

	pkNode, err := sr.Next()
	if err != nil {
		return err
	}
	pk, err := mpack.ReadSlice(pkNode, func(n *mpack.NodeReader) (string, error) { return n.ReadString() })
	if err != nil {
		return err
	}
	s.PartitionKeyFields = pk

	rkNode, err := sr.Next()
	if err != nil {
		return err
	}
	rk, err := mpack.ReadSlice(rkNode, func(n *mpack.NodeReader) (string, error) { return n.ReadString() })
	if err != nil {
		return err
	}
	// An unset key list packs as an empty array; decode that back to nil
	// so a Schema round-trips equal to the value that was written.
	if len(rk) == 0 {
		rk = nil
	}
	s.RangeKeyFields = rk
	return nil
}

// MPackNew returns a fresh Schema for use as a codec.NewRecordCodec
// factory sample.
func (s *Schema) MPackNew() mpack.Record { return &Schema{} }
