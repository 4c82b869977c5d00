package calculate_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calculate"
)

func FuzzEval(f *testing.F) {
	f.Add("1/0")
	f.Add("1/3*3")
	f.Add("-(1e9*1e9)-2")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := calculate.Parse(s, calculate.MaxDigits(1000))
		if err != nil {
			return
		}
		_, err = calculate.NewContext(calculate.MaxDigits(1000)).Eval(n)
		var eerr *calculate.EvalError
		if err != nil && !errors.As(err, &eerr) {
			t.Errorf("evaluating %q: unexpected error %v", s, err)
		}
	})
}
