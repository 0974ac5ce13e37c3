package bench

import "github.com/ccjeff/chogori-platform/mpack"

// scalarRow is a small, fixed-shape record standing in for a typical
// K2 row: a partition key string, a range key int64, and a handful of
// scalar value columns. It exists purely to give the codec something
// representative to encode and decode repeatedly.
type scalarRow struct {
	PartitionKey string
	RangeKey     int64
	Flag         bool
	Amount       float64
	Note         []byte
}

func (r *scalarRow) MPackFieldCount() int { return 5 }

func (r *scalarRow) MPackPack(w *mpack.Writer) error {
	if err := w.WriteString(r.PartitionKey); err != nil {
		return err
	}
	if err := w.WriteInt64(r.RangeKey); err != nil {
		return err
	}
	if err := w.WriteBool(r.Flag); err != nil {
		return err
	}
	if err := w.WriteFloat64(r.Amount); err != nil {
		return err
	}
	return w.WriteBinary(r.Note)
}

func (r *scalarRow) MPackUnpack(sr *mpack.StructReader) error {
	return sr.Read(&r.PartitionKey, &r.RangeKey, &r.Flag, &r.Amount, &r.Note)
}

type scalarRowWorkload struct{}

func (scalarRowWorkload) Name() string { return "scalar-row" }

func (scalarRowWorkload) EncodeOne() (mpack.Buffer, error) {
	row := &scalarRow{PartitionKey: "tenant-42", RangeKey: 100, Flag: true, Amount: 19.99, Note: []byte("benchmark note")}
	w := mpack.NewWriter()
	if err := w.WriteRecord(row); err != nil {
		return mpack.Buffer{}, err
	}
	return w.Flush()
}

func (scalarRowWorkload) DecodeOne(buf mpack.Buffer) error {
	var row scalarRow
	r := mpack.NewReader(buf)
	return r.Read(&row)
}

// wideRow has a hundred int32 columns, standing in for a wide analytic
// table, to exercise the array-of-fields path at a size where per-field
// overhead (not the fixed per-record framing) dominates.
type wideRow struct {
	Columns [100]int32
}

func (r *wideRow) MPackFieldCount() int { return len(r.Columns) }

func (r *wideRow) MPackPack(w *mpack.Writer) error {
	for _, c := range r.Columns {
		if err := w.WriteInt32(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *wideRow) MPackUnpack(sr *mpack.StructReader) error {
	for i := range r.Columns {
		if err := sr.Read(&r.Columns[i]); err != nil {
			return err
		}
	}
	return nil
}

type wideRowWorkload struct{}

func (wideRowWorkload) Name() string { return "wide-row" }

func (wideRowWorkload) EncodeOne() (mpack.Buffer, error) {
	row := &wideRow{}
	for i := range row.Columns {
		row.Columns[i] = int32(i)
	}
	w := mpack.NewWriter()
	if err := w.WriteRecord(row); err != nil {
		return mpack.Buffer{}, err
	}
	return w.Flush()
}

func (wideRowWorkload) DecodeOne(buf mpack.Buffer) error {
	var row wideRow
	r := mpack.NewReader(buf)
	return r.Read(&row)
}

func init() {
	Register("scalar-row", func() Workload { return scalarRowWorkload{} })
	Register("wide-row", func() Workload { return wideRowWorkload{} })
}
