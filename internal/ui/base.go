package ui

// Base carries the focus flag and dimensions every panel needs. Embed it in
// a component model to pick up the standard accessors.
type Base struct {
	width   int
	height  int
	focused bool
}

// SetFocused marks the component focused or not.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused reports whether the component has focus.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize records the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// ListHeight returns the rows left for list content once the given chrome
// overhead is subtracted.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
