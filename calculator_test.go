package calculate_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/jcgregorio/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculate"
	"github.com/zephyrtronium/calculate/decimal"
)

type fauxSyncWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (f *fauxSyncWriter) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.b.Write(p)
}

func (f *fauxSyncWriter) Sync() error {
	return nil
}

func (f *fauxSyncWriter) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.b.String()
}

func TestCalculate(t *testing.T) {
	c := calculate.NewCalculator(nil)
	r := c.Calculate("1/4")
	require.True(t, r.OK())
	assert.Equal(t, "1/4", r.Input)
	assert.True(t, decimal.NewInt(25, -2).Equal(r.Value))
	assert.Equal(t, "0.25", r.String())

	r = c.Calculate("1/0")
	assert.False(t, r.OK())
	assert.ErrorIs(t, r.Err, decimal.ErrDivisionByZero)
	assert.Equal(t, r.Err.Error(), r.String())

	r = c.Calculate("1+")
	assert.False(t, r.OK())
	var perr *calculate.ParseError
	assert.ErrorAs(t, r.Err, &perr)

	h := c.History().Entries()
	require.Len(t, h, 3)
	assert.Equal(t, []string{"1/4", "1/0", "1+"}, []string{h[0].Input, h[1].Input, h[2].Input})
}

func TestCalculateOptions(t *testing.T) {
	c := calculate.NewCalculator(nil, calculate.Prec(2), calculate.MaxDigits(4))
	assert.Equal(t, 2, c.Context().Prec())
	r := c.Calculate("2/3")
	require.NoError(t, r.Err)
	assert.Equal(t, "0.66", r.Value.Text())
	r = c.Calculate("12345")
	assert.ErrorIs(t, r.Err, decimal.ErrOverflow)
	r = c.Calculate("100*100")
	assert.ErrorIs(t, r.Err, decimal.ErrOverflow)
}

func TestCalculateLogs(t *testing.T) {
	var w fauxSyncWriter
	log := logger.NewFromOptions(&logger.Options{SyncWriter: &w, IncludeDebug: true})
	c := calculate.NewCalculator(log)
	c.Calculate("2*3")
	c.Calculate("2*")
	out := w.String()
	assert.Contains(t, out, `"2*3" = 6`)
	assert.Contains(t, out, `"2*":`)
}

func TestHistoryWatch(t *testing.T) {
	var h calculate.History
	var got []string
	cancel := h.Watch(func(r calculate.Result) {
		got = append(got, r.Input)
		// Reading the history from a watcher sees the new entry.
		assert.Equal(t, r.Input, h.Entries()[h.Len()-1].Input)
	})
	h.Append(calculate.Result{Input: "a"})
	h.Append(calculate.Result{Input: "b"})
	cancel()
	h.Append(calculate.Result{Input: "c"})
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 3, h.Len())
	// Cancelling twice is harmless.
	cancel()
}

func TestHistoryEntriesCopy(t *testing.T) {
	var h calculate.History
	h.Append(calculate.Result{Input: "1"})
	e := h.Entries()
	e[0].Input = "changed"
	assert.Equal(t, "1", h.Entries()[0].Input)
}

func TestHistoryConcurrent(t *testing.T) {
	c := calculate.NewCalculator(nil)
	var mu sync.Mutex
	var seen []string
	c.History().Watch(func(r calculate.Result) {
		mu.Lock()
		seen = append(seen, r.Input)
		mu.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := c.Calculate(fmt.Sprintf("%d*(1+1)", i))
			assert.True(t, decimal.NewInt(int64(2*i), 0).Equal(r.Value))
		}(i)
	}
	wg.Wait()
	entries := c.History().Entries()
	require.Len(t, entries, 50)
	// Watchers observe appends in history order.
	for i, r := range entries {
		assert.Equal(t, r.Input, seen[i])
	}
}
