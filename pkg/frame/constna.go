package frame

// constNAColumn is a column with no storage whose every element is NA.
// It carries a storage type so that concatenation can promote around it;
// Void marks a column whose type has not settled yet.
type constNAColumn struct {
	stype SType
	nrows int
	stats Stats
}

// NewNAColumn creates a constant-NA column of the given type and length.
func NewNAColumn(stype SType, nrows int) *Column {
	return newColumn(&constNAColumn{stype: stype, nrows: nrows})
}

func (c *constNAColumn) SType() SType { return c.stype }
func (c *constNAColumn) NRows() int   { return c.nrows }

func (c *constNAColumn) Get(int) (interface{}, bool) {
	return nil, false
}

func (c *constNAColumn) Clone() ColumnImpl {
	return &constNAColumn{stype: c.stype, nrows: c.nrows}
}

func (c *constNAColumn) NChildren() int { return 0 }
func (c *constNAColumn) Child(int) *Column {
	panic("frame: constant column has no children")
}
func (c *constNAColumn) Stats() *Stats { return &c.stats }
