package source

// sliceIterator yields records from a fixed slice. Useful for adapters that
// materialize small result sets and for tests.
type sliceIterator struct {
	records   []Record
	current   Record
	err       error
	exhausted bool
}

// NewSliceIterator returns a RecordIterator over the given records, yielding
// err (if any) once the records are exhausted.
func NewSliceIterator(records []Record, err error) RecordIterator {
	return &sliceIterator{
		records: records,
		err:     err,
	}
}

func (i *sliceIterator) Next() bool {
	if len(i.records) == 0 {
		i.exhausted = true
		return false
	}
	i.current = i.records[0]
	i.records = i.records[1:]
	return true
}

func (i *sliceIterator) Record() Record {
	return i.current
}

func (i *sliceIterator) Err() error {
	if i.exhausted {
		return i.err
	}
	return nil
}
