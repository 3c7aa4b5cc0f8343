package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrShortRecord    = errors.New("record is missing fields")
	ErrBadNumber      = errors.New("field is not an integer")
	ErrBadRunningDays = errors.New("running days must be 7 characters of 0 or 1")
)

// splitFields splits a record on the field separator and drops empty fields.
func splitFields(record string) []string {
	return nonEmpty(strings.Split(record, fieldSep))
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decoder reads named offsets out of a split record and keeps the first error.
type decoder struct {
	fields []string
	err    error
}

func newDecoder(fields []string) *decoder {
	return &decoder{fields: fields}
}

func (d *decoder) str(offset int, name string) string {
	if d.err != nil {
		return ""
	}
	if offset >= len(d.fields) {
		d.err = fmt.Errorf("%s at offset %d (have %d): %w", name, offset, len(d.fields), ErrShortRecord)
		return ""
	}
	return d.fields[offset]
}

func (d *decoder) num(offset int, name string) int {
	s := d.str(offset, name)
	if d.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		d.err = fmt.Errorf("%s %q: %w", name, s, ErrBadNumber)
		return 0
	}
	return n
}

func (d *decoder) runningDays(offset int) string {
	s := d.str(offset, "running_days")
	if d.err != nil {
		return ""
	}
	if !validRunningDays(s) {
		d.err = fmt.Errorf("running_days %q: %w", s, ErrBadRunningDays)
		return ""
	}
	return s
}

func validRunningDays(s string) bool {
	if len(s) != 7 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}
