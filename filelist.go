package toolbox

// FileList is an immutable ordered list of file records.
// The order is the merge order. Every operation returns a new list and
// leaves the receiver untouched; out-of-range indexes are no-ops.
type FileList struct {
	records []FileRecord
}

// NewFileList returns a list holding records in the given order.
func NewFileList(records ...FileRecord) FileList {
	return FileList{records: clone(records)}
}

func clone(records []FileRecord) []FileRecord {
	if len(records) == 0 {
		return nil
	}
	out := make([]FileRecord, len(records))
	copy(out, records)
	return out
}

// Len returns the number of records.
func (l FileList) Len() int {
	return len(l.records)
}

// At returns the record at index i.
func (l FileList) At(i int) (FileRecord, bool) {
	if i < 0 || i >= len(l.records) {
		return FileRecord{}, false
	}
	return l.records[i], true
}

// Records returns a copy of the records in order.
func (l FileList) Records() []FileRecord {
	return clone(l.records)
}

// TotalSize returns the sum of all record sizes.
func (l FileList) TotalSize() int64 {
	var total int64
	for _, r := range l.records {
		total += r.Size
	}
	return total
}

// Append returns a list with records added at the end, in batch order.
func (l FileList) Append(records ...FileRecord) FileList {
	if len(records) == 0 {
		return l
	}
	out := make([]FileRecord, 0, len(l.records)+len(records))
	out = append(out, l.records...)
	out = append(out, records...)
	return FileList{records: out}
}

// Move swaps the record at i with its neighbour in direction d.
// Moving the first record up or the last record down is a no-op.
func (l FileList) Move(i int, d Direction) FileList {
	j := i - 1
	if d == Down {
		j = i + 1
	}
	if i < 0 || i >= len(l.records) || j < 0 || j >= len(l.records) {
		return l
	}
	out := clone(l.records)
	out[i], out[j] = out[j], out[i]
	return FileList{records: out}
}

// MoveUp swaps the record at i with the one before it.
func (l FileList) MoveUp(i int) FileList {
	return l.Move(i, Up)
}

// MoveDown swaps the record at i with the one after it.
func (l FileList) MoveDown(i int) FileList {
	return l.Move(i, Down)
}

// Remove returns a list without the record at i.
func (l FileList) Remove(i int) FileList {
	if i < 0 || i >= len(l.records) {
		return l
	}
	out := make([]FileRecord, 0, len(l.records)-1)
	out = append(out, l.records[:i]...)
	out = append(out, l.records[i+1:]...)
	return FileList{records: out}
}

// Clear returns an empty list.
func (l FileList) Clear() FileList {
	return FileList{}
}
