package calculate

import "github.com/zephyrtronium/calculate/decimal"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// dec composes number literals and bounds their size.
	dec decimal.Context
	// maxDepth bounds the nesting of grammar rules.
	maxDepth int
}

// defaultMaxDepth is the nesting limit used unless MaxDepth says otherwise.
// Each parenthesis nests three rules and each binary operator one.
const defaultMaxDepth = 10000

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{dec: decimal.DefaultContext, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return p
}

type maxdigitsopt int

// MaxDigits limits the number of decimal digits in the mantissa of any number.
// It applies to literals when used as a ParseOption and to every intermediate
// result when used as a ContextOption. Zero or less means no limit.
func MaxDigits(n int) interface {
	ParseOption
	ContextOption
} {
	return maxdigitsopt(n)
}

func (o maxdigitsopt) parseOption(p parsectx) parsectx {
	p.dec.MaxDigits = int(o)
	return p
}

func (maxdigitsopt) ctxOption() {}

type maxdepthopt int

// MaxDepth limits how deeply the parser may nest grammar rules. Every
// parenthesized group and every operator in a chain nests further, so
// inputs that exceed the limit fail with a *ParseError rather than
// exhausting the stack. Zero or less means no limit.
func MaxDepth(n int) ParseOption {
	return maxdepthopt(n)
}

func (o maxdepthopt) parseOption(p parsectx) parsectx {
	p.maxDepth = int(o)
	return p
}
