package order

// Cart holds the in-progress order as two parallel, index-aligned
// sequences: the priced display lines and their transaction entries.
// Checkout zips them back together, so removal must always touch both
// at the same index.
type Cart struct {
	lines   []CartLine
	entries []TransactionEntry
}

func NewCart() *Cart {
	return &Cart{}
}

// AddLines appends lines in the given order. Multi-select kinds
// (appetizers, drinks) confirm several picks at once.
func (c *Cart) AddLines(lines ...CartLine) {
	for _, line := range lines {
		c.lines = append(c.lines, line)
		c.entries = append(c.entries, line.Entry)
	}
}

// RemoveLine drops the line and its paired transaction entry.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrIndexOutOfRange
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// Clear empties the cart. Called on explicit clear and after a
// successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
	c.entries = nil
}

// Total is the exact, unrounded sum of unit prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.UnitPrice
	}
	return total
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Entries() []TransactionEntry {
	out := make([]TransactionEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
