package timer

import (
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/queues/circularbuffer"
)

// DefaultHistoryCapacity is the number of samples retained per task name.
const DefaultHistoryCapacity = 120

// history keeps a bounded FIFO of durations per raw task name. Buckets are
// created lazily on the first sample and iterate in first-seen order.
type history struct {
	capacity int
	buckets  *linkedhashmap.Map // string -> *circularbuffer.Queue
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &history{
		capacity: capacity,
		buckets:  linkedhashmap.New(),
	}
}

// record appends d to task's bucket, evicting the oldest sample when full.
func (h *history) record(task string, d time.Duration) {
	var bucket *circularbuffer.Queue
	if v, found := h.buckets.Get(task); found {
		bucket = v.(*circularbuffer.Queue)
	} else {
		bucket = circularbuffer.New(h.capacity)
		h.buckets.Put(task, bucket)
	}

	if bucket.Full() {
		bucket.Dequeue()
	}
	bucket.Enqueue(d)
}

// samples returns task's retained durations, oldest first. Unknown tasks
// yield nil and are not created.
func (h *history) samples(task string) []time.Duration {
	v, found := h.buckets.Get(task)
	if !found {
		return nil
	}
	values := v.(*circularbuffer.Queue).Values()
	out := make([]time.Duration, len(values))
	for i, value := range values {
		out[i] = value.(time.Duration)
	}
	return out
}

// tasks returns the task names in the order their first sample arrived.
func (h *history) tasks() []string {
	keys := h.buckets.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}
