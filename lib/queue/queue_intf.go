package queue

import "errors"

var (
	ErrQueueFull = errors.New("[queue] reach to max capacity")
)

// Queue is a FIFO work queue.
type Queue[E any] interface {
	Len() int64
	// PushBack appends e to the tail of the queue.
	// It returns ErrQueueFull only if the queue is bounded and full.
	PushBack(e E) error
	// PopFront removes and returns the head element.
	// It returns false if the queue is empty.
	PopFront() (E, bool)
	// Peek returns the head element without removing it.
	Peek() (E, bool)
}
