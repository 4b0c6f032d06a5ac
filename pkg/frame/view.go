package frame

// viewColumn is a virtual column reading its single child through a row
// index. It holds a reference to the child and never the other way
// around; the view stays valid only while the child's data is unchanged.
type viewColumn struct {
	child *Column
	ri    *RowIndex
	stats Stats
}

func (c *viewColumn) SType() SType { return c.child.SType() }
func (c *viewColumn) NRows() int   { return c.ri.Len() }

func (c *viewColumn) Get(row int) (interface{}, bool) {
	return c.child.Get(c.ri.Apply(row))
}

func (c *viewColumn) Clone() ColumnImpl {
	return &viewColumn{child: c.child, ri: c.ri}
}

func (c *viewColumn) NChildren() int { return 1 }

func (c *viewColumn) Child(i int) *Column {
	if i != 0 {
		panic("frame: view column has exactly one child")
	}
	return c.child
}

func (c *viewColumn) Stats() *Stats { return &c.stats }
