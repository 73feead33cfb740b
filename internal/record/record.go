// Package record defines the unit of work moved from producer to consumers.
//
// A Record is a small immutable value: a per-run sequence number starting
// at 1 and a random payload. Records are passed by value, so once a
// consumer has dequeued one no other goroutine can observe it.
package record

import (
	"fmt"
	"math/rand/v2"
)

// DetailEvery controls pane formatting: every record whose sequence is a
// multiple of DetailEvery is rendered in full, others by sequence only.
const DetailEvery = 10

// Record is a sequence-numbered payload.
type Record struct {
	Seq   int
	Value int
}

// New creates a Record.
func New(seq, value int) Record {
	return Record{Seq: seq, Value: value}
}

// Detailed reports whether the record is rendered in full.
func (r Record) Detailed() bool {
	return r.Seq%DetailEvery == 0
}

// Format renders the record the way a display pane shows it.
//
// Detailed records end the current line:
//
//	SEQ = 10 data = 42\n
//
// Others are a bare sequence number followed by a space.
func (r Record) Format() string {
	if r.Detailed() {
		return fmt.Sprintf("SEQ = %d data = %d\n", r.Seq, r.Value)
	}
	return fmt.Sprintf("%d ", r.Seq)
}

// String implements fmt.Stringer.
func (r Record) String() string {
	return fmt.Sprintf("record(seq=%d value=%d)", r.Seq, r.Value)
}

// ValueSource returns a payload in [0, n).
type ValueSource func(n int) int

// Uniform draws payloads uniformly from math/rand/v2.
// Safe for concurrent use.
func Uniform(n int) int {
	return rand.IntN(n)
}
