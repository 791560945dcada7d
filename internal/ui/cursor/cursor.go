// Package cursor tracks a selection and scroll offset for list panels.
package cursor

// Cursor keeps a selected index and the first visible row of a list
// viewport. List length and viewport height are passed to methods instead of
// stored, since both change with reloads and resizes.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the selection
}

// New returns a cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible index.
func (c Cursor) Offset() int {
	return c.offset
}

// Reset returns the selection to the top of the list.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// Move shifts the selection by delta, clamped to the list, and scrolls to
// keep it visible.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects an absolute index, clamped to the list, and scrolls to keep
// it visible.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scrollIntoView(listLen, height)
}

// EnsureVisible re-derives the offset after the position was changed or the
// viewport resized.
func (c *Cursor) EnsureVisible(listLen, height int) {
	c.scrollIntoView(listLen, height)
}

// ClampToBounds pulls the selection back into range after the list shrank.
// Reports whether the position changed.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.Reset()
		return moved
	}
	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != old
}

// HandleKey applies the shared list-navigation keys and reports whether the
// key was one of them: j/down, k/up, g/home, G/end, ctrl+d, ctrl+u.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.Reset()
	case "G", "end":
		c.Jump(listLen-1, listLen, height)
	case "ctrl+d":
		c.Move(height/2, listLen, height)
	case "ctrl+u":
		c.Move(-height/2, listLen, height)
	default:
		return false
	}
	return true
}

func (c *Cursor) scrollIntoView(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	return min(v, maxVal)
}
