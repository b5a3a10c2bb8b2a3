package datalayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePreservesPushOrder(t *testing.T) {
	q := NewQueue()

	q.Push(Record{"ecommerce": nil})
	q.Push(Record{"event": "view_item"})
	q.Push(Record{"event": "add_to_cart"})

	records := q.Records()
	require.Len(t, records, 3)
	assert.Nil(t, records[0]["ecommerce"])
	assert.Equal(t, "view_item", records[1]["event"])
	assert.Equal(t, "add_to_cart", records[2]["event"])
	assert.Equal(t, 3, q.Len())
}

func TestRecordsReturnsSnapshot(t *testing.T) {
	q := NewQueue()
	q.Push(Record{"event": "view_item"})

	snapshot := q.Records()
	q.Push(Record{"event": "add_to_cart"})

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, q.Len())
}

type recorder struct {
	seen []Record
}

func (r *recorder) Push(record Record) {
	r.seen = append(r.seen, record)
}

func TestFanoutPushesToEverySink(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	sink := Fanout(a, b)

	sink.Push(Record{"event": "purchase"})

	require.Len(t, a.seen, 1)
	require.Len(t, b.seen, 1)
	assert.Equal(t, "purchase", a.seen[0]["event"])
	assert.Equal(t, "purchase", b.seen[0]["event"])
}
