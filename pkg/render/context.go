package render

// Metrics fixes the page geometry a renderer lays out against. Units follow
// the backing canvas (millimetres for the PDF renderers).
type Metrics struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	// ContentTop is where the cursor lands after a page break on
	// continuation pages.
	ContentTop float64
}

// Context is the explicit layout state threaded through rendering: current
// vertical cursor, page index, and the active left margin. Repeater
// indentation pushes and pops the margin instead of mutating a shared field.
type Context struct {
	Metrics Metrics
	Y       float64
	Page    int

	leftStack []float64
}

// NewContext creates a layout context positioned at the top of page one's
// content area.
func NewContext(metrics Metrics) *Context {
	return &Context{
		Metrics: metrics,
		Y:       metrics.ContentTop,
		Page:    1,
	}
}

// Left returns the active left margin.
func (c *Context) Left() float64 {
	if n := len(c.leftStack); n > 0 {
		return c.leftStack[n-1]
	}
	return c.Metrics.Margin
}

// PushLeft indents the active left margin by delta.
func (c *Context) PushLeft(delta float64) {
	c.leftStack = append(c.leftStack, c.Left()+delta)
}

// PopLeft restores the margin active before the matching PushLeft. Popping an
// empty stack is a no-op.
func (c *Context) PopLeft() {
	if n := len(c.leftStack); n > 0 {
		c.leftStack = c.leftStack[:n-1]
	}
}

// Width returns the usable content width at the active margin.
func (c *Context) Width() float64 {
	return c.Metrics.PageWidth - c.Left() - c.Metrics.Margin
}

// Advance moves the cursor down by h.
func (c *Context) Advance(h float64) {
	c.Y += h
}

// NeedsBreak reports whether content must move to a new page: the cursor has
// entered the bottom band reserved by threshold.
func (c *Context) NeedsBreak(threshold float64) bool {
	return c.Y > c.Metrics.PageHeight-threshold
}

// StartPage advances to the next page and resets the cursor to the content
// top.
func (c *Context) StartPage() {
	c.Page++
	c.Y = c.Metrics.ContentTop
}
