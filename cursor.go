package calculate

import "strconv"

// cursor reads runes from an expression with the ability to return to earlier
// positions. Saved positions form a stack.
type cursor struct {
	src   []rune
	pos   int
	marks []int
}

// checkpoint is a saved cursor position. depth is the size of the mark stack
// before the checkpoint was taken.
type checkpoint struct {
	depth int
	pos   int
}

func newCursor(src string) *cursor {
	return &cursor{src: []rune(src)}
}

// peek returns the current rune without consuming it. The second result is
// false at the end of the input.
func (c *cursor) peek() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

// read returns the current rune and moves past it. At the end of the input,
// the result is false and the position does not change.
func (c *cursor) read() (rune, bool) {
	r, ok := c.peek()
	if ok {
		c.pos++
	}
	return r, ok
}

// offset returns the number of runes consumed so far.
func (c *cursor) offset() int {
	return c.pos
}

// text returns the runes from offset from up to the current position.
func (c *cursor) text(from int) string {
	return string(c.src[from:c.pos])
}

// checkpoint saves the current position.
func (c *cursor) checkpoint() checkpoint {
	cp := checkpoint{depth: len(c.marks), pos: c.pos}
	c.marks = append(c.marks, c.pos)
	return cp
}

// restore returns to the position saved by cp and discards cp along with every
// checkpoint taken after it.
func (c *cursor) restore(cp checkpoint) {
	c.check(cp)
	c.pos = c.marks[cp.depth]
	c.marks = c.marks[:cp.depth]
}

// commit discards cp and every checkpoint taken after it without moving.
func (c *cursor) commit(cp checkpoint) {
	c.check(cp)
	c.marks = c.marks[:cp.depth]
}

func (c *cursor) check(cp checkpoint) {
	if cp.depth >= len(c.marks) || c.marks[cp.depth] != cp.pos {
		panic("calculate: stale cursor checkpoint at depth " + strconv.Itoa(cp.depth))
	}
}
