// Package datalayer holds the append-only record queue drained by the
// tag-management tooling. Records keep the exact field names pushed by
// the storefront; they are the wire contract with downstream consumers.
package datalayer

import (
	"sync"
)

// Record is a single data-layer push. Top-level keys vary by record
// kind (event records, clearing records, order-details records), so the
// unit of exchange is a plain map marshaling to the agreed field names.
type Record map[string]interface{}

// Sink receives data-layer records in push order.
type Sink interface {
	Push(record Record)
}

// Queue is the canonical in-process sink: an append-only sequence.
// Records are never removed or reordered once pushed.
type Queue struct {
	mu      sync.Mutex
	records []Record
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(record Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.records = append(q.records, record)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// Records returns a snapshot copy in push order.
func (q *Queue) Records() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Record, len(q.records))
	copy(out, q.records)
	return out
}

type fanout []Sink

// Fanout composes sinks; every record is pushed to each sink in order.
func Fanout(sinks ...Sink) Sink {
	return fanout(sinks)
}

func (f fanout) Push(record Record) {
	for _, s := range f {
		s.Push(record)
	}
}
