// Package collection provides a sorted circular container whose entries live
// in an index-addressed arena. Entries can be removed while iterating, but
// only through the cursor that is currently visiting them.
package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when the ring has no room for another entry.
	ErrAllocation = errors.New("collection: no free entry")

	// ErrNoPlacement is returned when the placer rejects every position.
	ErrNoPlacement = errors.New("collection: placer rejected every position")
)

const concurrentModification = "collection: ring modified outside the active cursor"

// none marks an absent link, an empty ring, or a cursor positioned before head.
const none = -1

// Entry is a stable handle to a live element of a Ring.
type Entry int

// Placer decides whether candidate belongs between before and after.
// before is nil for the slot in front of the first element, after is nil
// for the slot behind the last element. The pointers are only valid for
// the duration of the call.
type Placer[T any] func(before *T, candidate T, after *T) bool

// Config holds construction options for a Ring.
type Config[T any] struct {
	// Capacity bounds the number of live entries. Zero means unbounded.
	Capacity int
	// Release is called with a value that could not be stored.
	Release func(T)
}

type node[T any] struct {
	value T
	prev  int
	next  int
	live  bool
}

// Ring is a sorted, circular, doubly linked sequence backed by an arena.
type Ring[T any] struct {
	cfg     Config[T]
	nodes   []node[T]
	free    []int
	head    int
	length  int
	version uint64
}

// New creates an empty ring.
func New[T any](cfg Config[T]) *Ring[T] {
	return &Ring[T]{cfg: cfg, head: none}
}

// Len returns the number of live entries.
func (r *Ring[T]) Len() int {
	return r.length
}

// Head returns the first entry, if any.
func (r *Ring[T]) Head() (Entry, bool) {
	if r.head == none {
		return Entry(none), false
	}
	return Entry(r.head), true
}

// Value returns the payload of a live entry.
func (r *Ring[T]) Value(e Entry) (T, bool) {
	if !r.isLive(int(e)) {
		var zero T
		return zero, false
	}
	return r.nodes[e].value, true
}

// Values copies the payloads in ring order.
func (r *Ring[T]) Values() []T {
	out := make([]T, 0, r.length)
	if r.head == none {
		return out
	}
	for i, e := 0, r.head; i < r.length; i, e = i+1, r.nodes[e].next {
		out = append(out, r.nodes[e].value)
	}
	return out
}

// Insert scans the ring from head and links v into the first slot the
// placer accepts. The candidate slots are tried in order: in front of head,
// between each neighbouring pair, behind the last element. Inserting in
// front of head makes v the new head. On error the ring is unchanged and
// Config.Release receives v.
func (r *Ring[T]) Insert(v T, place Placer[T]) (Entry, error) {
	idx, err := r.alloc(v)
	if err != nil {
		r.release(v)
		return Entry(none), err
	}

	if r.head == none {
		r.nodes[idx].prev = idx
		r.nodes[idx].next = idx
		r.head = idx
		r.linked()
		return Entry(idx), nil
	}

	head := r.head
	if place(nil, v, &r.nodes[head].value) {
		r.linkAfter(idx, r.nodes[head].prev)
		r.head = idx
		r.linked()
		return Entry(idx), nil
	}

	for e := head; ; e = r.nodes[e].next {
		next := r.nodes[e].next
		if next == head {
			if place(&r.nodes[e].value, v, nil) {
				r.linkAfter(idx, e)
				r.linked()
				return Entry(idx), nil
			}
			break
		}
		if place(&r.nodes[e].value, v, &r.nodes[next].value) {
			r.linkAfter(idx, e)
			r.linked()
			return Entry(idx), nil
		}
	}

	r.freeSlot(idx)
	r.release(v)
	return Entry(none), ErrNoPlacement
}

// Remove unlinks and frees a live entry. It must not be used while a cursor
// is iterating the ring; use Cursor.Remove instead.
func (r *Ring[T]) Remove(e Entry) error {
	if !r.isLive(int(e)) {
		return fmt.Errorf("collection: entry %d is not live", e)
	}
	r.unlink(int(e))
	return nil
}

// Clear breaks the ring and frees every entry in order, handing each payload
// to destroy when it is non-nil. Clearing an empty ring is a no-op.
func (r *Ring[T]) Clear(destroy func(T)) {
	if r.head == none {
		return
	}

	e := r.head
	r.nodes[r.nodes[e].prev].next = none
	for e != none {
		next := r.nodes[e].next
		if destroy != nil {
			destroy(r.nodes[e].value)
		}
		e = next
	}

	r.nodes = r.nodes[:0]
	r.free = r.free[:0]
	r.head = none
	r.length = 0
	r.version++
}

// Cursor returns an iterator positioned before head.
func (r *Ring[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{ring: r, at: none, version: r.version}
}

func (r *Ring[T]) alloc(v T) (int, error) {
	if r.cfg.Capacity > 0 && r.length >= r.cfg.Capacity {
		return none, fmt.Errorf("%w (capacity %d)", ErrAllocation, r.cfg.Capacity)
	}
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.nodes[idx] = node[T]{value: v, prev: none, next: none, live: true}
		return idx, nil
	}
	r.nodes = append(r.nodes, node[T]{value: v, prev: none, next: none, live: true})
	return len(r.nodes) - 1, nil
}

func (r *Ring[T]) release(v T) {
	if r.cfg.Release != nil {
		r.cfg.Release(v)
	}
}

func (r *Ring[T]) freeSlot(idx int) {
	var zero T
	r.nodes[idx] = node[T]{value: zero, prev: none, next: none}
	r.free = append(r.free, idx)
}

func (r *Ring[T]) isLive(idx int) bool {
	return idx >= 0 && idx < len(r.nodes) && r.nodes[idx].live
}

func (r *Ring[T]) linked() {
	r.length++
	r.version++
}

func (r *Ring[T]) linkAfter(idx, at int) {
	next := r.nodes[at].next
	r.nodes[idx].prev = at
	r.nodes[idx].next = next
	r.nodes[next].prev = idx
	r.nodes[at].next = idx
}

// detach splices idx out of the ring in O(1). The detached node keeps its
// own prev/next so a cursor standing on it can still step back.
func (r *Ring[T]) detach(idx int) {
	n := r.nodes[idx]
	r.nodes[n.next].prev = n.prev
	r.nodes[n.prev].next = n.next
}

func (r *Ring[T]) unlink(idx int) {
	switch {
	case r.length == 1:
		r.head = none
	case idx == r.head:
		r.head = r.nodes[idx].next
	}
	r.detach(idx)
	r.freeSlot(idx)
	r.length--
	r.version++
}

// Cursor walks a ring from head to tail exactly once. Only the cursor that
// performs a removal may keep iterating afterwards; any other structural
// change to the ring makes the cursor panic on its next use.
type Cursor[T any] struct {
	ring    *Ring[T]
	at      int
	done    bool
	version uint64
}

// Next advances to the next element and reports whether one exists. Once
// it returns false it keeps returning false.
func (c *Cursor[T]) Next() bool {
	if c.done {
		return false
	}
	c.check()

	r := c.ring
	switch {
	case r.head == none:
		c.done = true
		return false
	case c.at == none:
		c.at = r.head
		return true
	}

	next := r.nodes[c.at].next
	if next == r.head {
		c.at = none
		c.done = true
		return false
	}
	c.at = next
	return true
}

// Value returns the element under the cursor.
func (c *Cursor[T]) Value() T {
	c.check()
	if c.at == none {
		panic("collection: cursor is not on an element")
	}
	return c.ring.nodes[c.at].value
}

// Entry returns the handle of the element under the cursor.
func (c *Cursor[T]) Entry() Entry {
	return Entry(c.at)
}

// Remove deletes the element under the cursor and rewinds the cursor so
// that the following Next lands on the removed element's successor.
func (c *Cursor[T]) Remove() {
	c.check()
	if c.at == none {
		return
	}

	r := c.ring
	cur := c.at
	prev := r.nodes[cur].prev
	wasHead := cur == r.head

	r.unlink(cur)

	if wasHead || r.head == none {
		c.at = none
	} else {
		c.at = prev
	}
	c.version = r.version
}

func (c *Cursor[T]) check() {
	if c.version != c.ring.version {
		panic(concurrentModification)
	}
}
