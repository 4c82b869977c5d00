// Command calculate evaluates arithmetic expressions using exact decimal
// numbers.
//
// Each argument is evaluated as a separate expression. With no arguments,
// calculate reads one expression per line from the input.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/zephyrtronium/calculate"
)

func main() {
	a := app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.cli().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "calculate:", err)
		os.Exit(1)
	}
}

// floatPrec is the precision in bits of results formatted with a fmt verb.
const floatPrec = 256

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) cli() *cli.App {
	return &cli.App{
		Name:      "calculate",
		Usage:     "evaluate arithmetic expressions with exact decimal numbers",
		ArgsUsage: "[expression ...]",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with precision, max_digits, format, and history_file settings",
			},
			&cli.IntFlag{
				Name:  "prec",
				Value: defaultConfig().Precision,
				Usage: "extra decimal digits computed for quotients that are not exact",
			},
			&cli.IntFlag{
				Name:  "max-digits",
				Value: defaultConfig().MaxDigits,
				Usage: "largest number of digits in any mantissa, or 0 for no limit",
			},
			&cli.StringFlag{
				Name:  "fmt",
				Value: defaultConfig().Format,
				Usage: `result format: "exact", "sci" for mantissa and exponent, or a fmt verb like %g`,
			},
			&cli.StringFlag{
				Name:  "in",
				Usage: "input file, or - for stdin (default stdin if no args given)",
			},
			&cli.StringFlag{
				Name:  "history",
				Usage: "file to append results to as JSON lines",
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "print parse trees",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log each evaluation to stderr",
			},
		},
		Action: a.run,
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "show the results recorded in the history file",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "last",
						Usage: "show only the most recent results",
					},
				},
				Action: a.history,
			},
		},
	}
}

// resolveConfig loads the config file, if any, and applies flags over it.
func resolveConfig(c *cli.Context) (config, error) {
	cfg := defaultConfig()
	if p := c.String("config"); p != "" {
		var err error
		if cfg, err = loadConfig(p); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("prec") {
		cfg.Precision = c.Int("prec")
	}
	if c.IsSet("max-digits") {
		cfg.MaxDigits = c.Int("max-digits")
	}
	if c.IsSet("fmt") {
		cfg.Format = c.String("fmt")
	}
	if c.IsSet("history") {
		cfg.HistoryFile = c.String("history")
	}
	return cfg, cfg.validate()
}

// syncWriter adds a no-op Sync to writers that lack one.
type syncWriter struct {
	io.Writer
}

func (syncWriter) Sync() error { return nil }

func newLogger(w io.Writer, verbose bool) slog.Logger {
	sw, ok := w.(logger.SyncWriter)
	if !ok {
		sw = syncWriter{w}
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   sw,
		IncludeDebug: verbose,
	})
}

func (a *app) run(c *cli.Context) (err error) {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	p, err := newPrinter(a.stdout, cfg, c.Bool("echo"))
	if err != nil {
		return err
	}
	log := newLogger(a.stderr, c.Bool("verbose"))
	calc := calculate.NewCalculator(log, calculate.Prec(cfg.Precision), calculate.MaxDigits(cfg.MaxDigits))
	if cfg.HistoryFile != "" {
		f, ferr := os.OpenFile(cfg.HistoryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if ferr != nil {
			return errors.Wrap(ferr, "opening history")
		}
		stop := watchHistory(calc.History(), f)
		defer func() {
			werr := stop()
			cerr := f.Close()
			if err == nil {
				err = werr
			}
			if err == nil && cerr != nil {
				err = errors.Wrap(cerr, "closing history")
			}
		}()
		log.Debugf("appending results to %s", cfg.HistoryFile)
	}

	if c.NArg() > 0 {
		return batch(calc, p, c.Args().Slice())
	}
	in := a.stdin
	if name := c.String("in"); name != "" && name != "-" {
		f, ferr := os.Open(name)
		if ferr != nil {
			return errors.Wrap(ferr, "opening input")
		}
		defer f.Close()
		in = f
	}
	return interactive(calc, p, in, isTerminal(in))
}

// batch evaluates expressions in parallel and prints the results in order.
func batch(calc *calculate.Calculator, p *printer, exprs []string) error {
	results := make([]calculate.Result, len(exprs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range exprs {
		i, src := i, src
		g.Go(func() error {
			results[i] = calc.Evaluate(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		calc.History().Append(r)
		if !r.OK() {
			failed++
		}
		p.print(r)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

// interactive evaluates each non-blank line of in.
func interactive(calc *calculate.Calculator, p *printer, in io.Reader, prompt bool) error {
	s := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(p.w, "> ")
		}
		if !s.Scan() {
			break
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		p.print(calc.Calculate(line))
	}
	if prompt {
		fmt.Fprintln(p.w)
	}
	return errors.Wrap(s.Err(), "reading input")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) history(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if cfg.HistoryFile == "" {
		return errors.New("no history file; use --history or history_file in the config")
	}
	f, err := os.Open(cfg.HistoryFile)
	if err != nil {
		return errors.Wrap(err, "opening history")
	}
	defer f.Close()
	recs, err := readHistory(f)
	if err != nil {
		return err
	}
	if n := c.Int("last"); n > 0 && n < len(recs) {
		recs = recs[len(recs)-n:]
	}
	renderHistory(a.stdout, recs)
	return nil
}
