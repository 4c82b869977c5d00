package calculate_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calculate"
)

func FuzzParse(f *testing.F) {
	f.Add("1+2")
	f.Add("(2+2)*(7-(1+2))")
	f.Add("1.5e-3/-4")
	f.Add("((1)")
	f.Add("1e")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := calculate.Parse(s, calculate.MaxDigits(1000))
		if err != nil {
			var ierr calculate.InputError
			if !errors.As(err, &ierr) {
				t.Errorf("parsing %q: error %v does not implement InputError", s, err)
			}
			return
		}
		if n == nil {
			t.Errorf("parsing %q: nil node with nil error", s)
		}
	})
}
