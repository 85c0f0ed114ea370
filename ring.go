package taskexec

import "sync/atomic"

// ringSlot holds one element and the sequence number that tells
// producers and the consumer whose turn it is.
type ringSlot[T any] struct {
	seq atomic.Uint64
	val T
}

// ring is a bounded lock-free queue. Any number of producers may push
// concurrently, including from interrupt handlers; pop is safe to call
// concurrently as well, although the executor is its only consumer.
// The ring never grows.
//
// A single slot cannot tell "free for the next lap" from "occupied"
// apart by sequence number, so at least two slots are allocated and
// limit enforces the requested capacity.
type ring[T any] struct {
	_     [64]byte
	head  atomic.Uint64
	_     [56]byte
	tail  atomic.Uint64
	_     [56]byte
	size  uint64 // slots allocated
	limit uint64 // elements admitted
	slots []ringSlot[T]
}

func newRing[T any](capacity int) *ring[T] {
	if capacity <= 0 {
		panic("taskexec: ring capacity must be > 0")
	}
	size := max(capacity, 2)
	r := &ring[T]{
		size:  uint64(size),
		limit: uint64(capacity),
		slots: make([]ringSlot[T], size),
	}
	for i := range r.slots {
		r.slots[i].seq.Store(uint64(i))
	}
	return r
}

// push appends v. It returns false without blocking if the ring is
// full.
func (r *ring[T]) push(v T) bool {
	pos := r.tail.Load()
	for {
		s := &r.slots[pos%r.size]
		seq := s.seq.Load()
		switch dif := int64(seq - pos); {
		case dif == 0:
			if head := r.head.Load(); head <= pos && pos-head >= r.limit {
				return false
			}
			if r.tail.CompareAndSwap(pos, pos+1) {
				s.val = v
				s.seq.Store(pos + 1)
				return true
			}
			pos = r.tail.Load()
		case dif < 0:
			return false
		default:
			pos = r.tail.Load()
		}
	}
}

// pop removes the oldest element. The boolean is false if the ring is
// empty.
func (r *ring[T]) pop() (T, bool) {
	var zero T
	pos := r.head.Load()
	for {
		s := &r.slots[pos%r.size]
		seq := s.seq.Load()
		switch dif := int64(seq - (pos + 1)); {
		case dif == 0:
			if r.head.CompareAndSwap(pos, pos+1) {
				v := s.val
				s.val = zero
				s.seq.Store(pos + r.size)
				return v, true
			}
			pos = r.head.Load()
		case dif < 0:
			return zero, false
		default:
			pos = r.head.Load()
		}
	}
}

func (r *ring[T]) len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

func (r *ring[T]) empty() bool {
	return r.len() == 0
}

func (r *ring[T]) capacity() int {
	return int(r.limit)
}
