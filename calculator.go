package calculate

import (
	"sync"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"

	"github.com/zephyrtronium/calculate/decimal"
)

// Result pairs an input with the outcome of evaluating it.
type Result struct {
	Input string
	// Value is the result of a successful evaluation.
	Value decimal.Number
	// Err is the parse or evaluation error, if any.
	Err error
}

// OK reports whether the evaluation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// String returns the plain decimal text of the value, or the error message.
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Value.Text()
}

// History is an append-only log of results, in the order they were appended.
// It is safe for concurrent use. The zero value is an empty history.
type History struct {
	// order serializes appends with their notifications.
	order sync.Mutex
	// mu guards everything below.
	mu       sync.Mutex
	entries  []Result
	watchers []watcher
	nextID   int
}

type watcher struct {
	id int
	fn func(Result)
}

// Append adds r to the history and calls each watcher with it before
// returning. Watchers see results in the same order as Entries. A watcher must
// not call Append.
func (h *History) Append(r Result) {
	h.order.Lock()
	defer h.order.Unlock()
	h.mu.Lock()
	h.entries = append(h.entries, r)
	ws := make([]watcher, len(h.watchers))
	copy(ws, h.watchers)
	h.mu.Unlock()
	for _, w := range ws {
		w.fn(r)
	}
}

// Entries returns a copy of every result in the history.
func (h *History) Entries() []Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := make([]Result, len(h.entries))
	copy(r, h.entries)
	return r
}

// Len returns the number of results in the history.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Watch registers fn to be called with each result appended from now on. The
// returned function unregisters it.
func (h *History) Watch(fn func(Result)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.watchers = append(h.watchers, watcher{id: id, fn: fn})
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, w := range h.watchers {
			if w.id == id {
				h.watchers = append(h.watchers[:i:i], h.watchers[i+1:]...)
				return
			}
		}
	}
}

// Calculator evaluates inputs and records them in a history. Calculate may be
// called concurrently.
type Calculator struct {
	log  slog.Logger
	ctx  *Context
	hist History
}

// NewCalculator creates a calculator that evaluates with the given options.
// If log is nil, nothing is logged.
func NewCalculator(log slog.Logger, opts ...ContextOption) *Calculator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Calculator{
		log: log,
		ctx: NewContext(opts...),
	}
}

// Calculate parses and evaluates input and appends the result to the history.
func (c *Calculator) Calculate(input string) Result {
	r := c.Evaluate(input)
	c.hist.Append(r)
	return r
}

// Evaluate parses and evaluates input without recording it.
func (c *Calculator) Evaluate(input string) Result {
	ctx := c.ctx.Clone()
	r := Result{Input: input}
	n, err := parse(input, parsectx{dec: ctx.dec, maxDepth: defaultMaxDepth})
	if err == nil {
		r.Value, r.Err = ctx.Eval(n)
	} else {
		r.Err = err
	}
	if r.OK() {
		c.log.Debugf("%q = %s", input, r.Value.Text())
	} else {
		c.log.Debugf("%q: %v", input, r.Err)
	}
	return r
}

// History returns the calculator's history.
func (c *Calculator) History() *History {
	return &c.hist
}

// Context returns a copy of the context the calculator evaluates with.
func (c *Calculator) Context() *Context {
	return c.ctx.Clone()
}
