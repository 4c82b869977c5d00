package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/calculate"
)

// printer writes results in the configured format.
type printer struct {
	w         io.Writer
	format    string
	echo      bool
	maxDigits int
	errColor  *color.Color
}

func newPrinter(w io.Writer, cfg config, echo bool) (*printer, error) {
	switch {
	case cfg.Format == "exact", cfg.Format == "sci":
	case floatVerb(cfg.Format):
	default:
		return nil, errors.Errorf(`format %q must be "exact", "sci", or text with one big.Float verb`, cfg.Format)
	}
	return &printer{
		w:         w,
		format:    cfg.Format,
		echo:      echo,
		maxDigits: cfg.MaxDigits,
		errColor:  color.New(color.FgRed),
	}, nil
}

func (p *printer) print(r calculate.Result) {
	if p.echo {
		if n, err := calculate.Parse(r.Input, calculate.MaxDigits(p.maxDigits)); err == nil {
			fmt.Fprintf(p.w, "%v : ", n)
		}
	}
	if !r.OK() {
		p.errColor.Fprintln(p.w, "error:", r.Err)
		return
	}
	switch p.format {
	case "exact":
		fmt.Fprintln(p.w, r.Value.Text())
	case "sci":
		fmt.Fprintln(p.w, r.Value.String())
	default:
		fmt.Fprintf(p.w, p.format+"\n", r.Value.Float(floatPrec))
	}
}

// floatVerb reports whether format has exactly one verb, and that verb is one
// *big.Float formats. Flags, width, and precision are allowed; argument
// indexes and * are not. %% is literal text.
func floatVerb(format string) bool {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			i++
		}
		if i < len(format) && format[i] == '.' {
			i++
			for i < len(format) && '0' <= format[i] && format[i] <= '9' {
				i++
			}
		}
		switch {
		case i >= len(format):
			return false
		case strings.IndexByte("bpeEfFgGxXv", format[i]) >= 0:
			verbs++
		default:
			return false
		}
	}
	return verbs == 1
}
