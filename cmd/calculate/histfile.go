package main

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/calculate"
)

// record is one line of a history file.
type record struct {
	Input string `json:"input"`
	// Value is the plain decimal text of the result.
	Value string `json:"value,omitempty"`
	// Exact is the result as mantissa and exponent.
	Exact string `json:"exact,omitempty"`
	Error string `json:"error,omitempty"`
}

func newRecord(r calculate.Result) record {
	if !r.OK() {
		return record{Input: r.Input, Error: r.Err.Error()}
	}
	return record{Input: r.Input, Value: r.Value.Text(), Exact: r.Value.String()}
}

// historyWriter appends results to a history file as JSON lines.
type historyWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// watchHistory writes every result appended to h to w until the returned
// function is called. That function returns the first write error.
func watchHistory(h *calculate.History, w io.Writer) func() error {
	hw := &historyWriter{enc: json.NewEncoder(w)}
	cancel := h.Watch(hw.write)
	return func() error {
		cancel()
		hw.mu.Lock()
		defer hw.mu.Unlock()
		return hw.err
	}
}

func (hw *historyWriter) write(r calculate.Result) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	if hw.err != nil {
		return
	}
	if err := hw.enc.Encode(newRecord(r)); err != nil {
		hw.err = errors.Wrap(err, "writing history")
	}
}

// readHistory reads the records of a history file.
func readHistory(r io.Reader) ([]record, error) {
	var recs []record
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<24)
	for line := 1; s.Scan(); line++ {
		if len(s.Bytes()) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(s.Bytes(), &rec); err != nil {
			return recs, errors.Wrapf(err, "history line %d", line)
		}
		recs = append(recs, rec)
	}
	return recs, errors.Wrap(s.Err(), "reading history")
}

// renderHistory writes records as a table.
func renderHistory(w io.Writer, recs []record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Input", "Result"})
	table.SetAutoWrapText(false)
	for i, rec := range recs {
		res := rec.Value
		if rec.Error != "" {
			res = "error: " + rec.Error
		}
		table.Append([]string{strconv.Itoa(i + 1), rec.Input, res})
	}
	table.Render()
}
