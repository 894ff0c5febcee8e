package queue

const defaultArrayQueueCapacity = 16

var _ Queue[int] = (*ArrayQueue[int])(nil)

// ArrayQueue is a growable ring buffer. It is not thread safe,
// each tree pass owns its queue.
// The capacity is always a power of two, so the index of
// the slot is able to be calculated by mask.
type ArrayQueue[E any] struct {
	buf    []E
	head   int64
	count  int64
	maxCap int64
}

func (q *ArrayQueue[E]) mask() int64 {
	return int64(len(q.buf)) - 1
}

func (q *ArrayQueue[E]) Len() int64 {
	return q.count
}

func (q *ArrayQueue[E]) Cap() int64 {
	return int64(len(q.buf))
}

func (q *ArrayQueue[E]) PushBack(e E) error {
	if q.count == int64(len(q.buf)) {
		if q.maxCap > 0 && q.count >= q.maxCap {
			return ErrQueueFull
		}
		q.grow()
	}
	q.buf[(q.head+q.count)&q.mask()] = e
	q.count++
	return nil
}

func (q *ArrayQueue[E]) PopFront() (e E, ok bool) {
	if q.count <= 0 {
		return e, false
	}
	e = q.buf[q.head]
	q.buf[q.head] = *new(E) // release the reference
	q.head = (q.head + 1) & q.mask()
	q.count--
	if q.count == 0 {
		q.head = 0
	}
	return e, true
}

func (q *ArrayQueue[E]) Peek() (e E, ok bool) {
	if q.count <= 0 {
		return e, false
	}
	return q.buf[q.head], true
}

// Doubles the ring buffer and moves the elements to
// the front of the new buffer in FIFO order.
func (q *ArrayQueue[E]) grow() {
	newCap := int64(len(q.buf)) << 1
	if newCap <= 0 {
		newCap = defaultArrayQueueCapacity
	}
	if q.maxCap > 0 && newCap > q.maxCap {
		newCap = q.maxCap
	}
	buf := make([]E, newCap)
	if q.count > 0 {
		if tail := q.head + q.count; tail <= int64(len(q.buf)) {
			copy(buf, q.buf[q.head:tail])
		} else {
			n := copy(buf, q.buf[q.head:])
			copy(buf[n:], q.buf[:q.count-int64(n)])
		}
	}
	q.buf = buf
	q.head = 0
}

type ArrayQueueOption[E any] func(*ArrayQueue[E])

func NewArrayQueue[E any](opts ...ArrayQueueOption[E]) *ArrayQueue[E] {
	q := &ArrayQueue[E]{}
	for _, o := range opts {
		if o != nil {
			o(q)
		}
	}
	if q.buf == nil {
		q.buf = make([]E, defaultArrayQueueCapacity)
	}
	if q.maxCap > 0 && int64(len(q.buf)) > q.maxCap {
		q.buf = make([]E, q.maxCap)
	}
	return q
}

// WithArrayQueueCapacity sets the initial capacity.
// It will be rounded up to the power of two.
func WithArrayQueueCapacity[E any](capacity int64) ArrayQueueOption[E] {
	return func(q *ArrayQueue[E]) {
		if capacity <= 0 {
			capacity = defaultArrayQueueCapacity
		}
		q.buf = make([]E, ceilPowOf2(capacity))
	}
}

// WithArrayQueueMaxCapacity bounds the queue, it will be
// rounded up to the power of two. PushBack returns
// ErrQueueFull instead of dropping the element.
func WithArrayQueueMaxCapacity[E any](maxCap int64) ArrayQueueOption[E] {
	return func(q *ArrayQueue[E]) {
		if maxCap <= 0 {
			q.maxCap = 0
			return
		}
		q.maxCap = ceilPowOf2(maxCap)
	}
}

func ceilPowOf2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	x := int64(1)
	for x < n {
		x <<= 1
	}
	return x
}
