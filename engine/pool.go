package engine

import "iter"

// Handle identifies an entry in a Pool. The lower 32 bits are the slot index
// and the upper 32 bits the slot's generation, so a handle to a deleted entry
// never resolves to whatever reuses its slot. The zero Handle is never valid.
type Handle uint64

func newHandle(generation uint32, index uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the handle
func (h Handle) Index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the handle
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}

const (
	poolBlockSize = 64
)

type poolBlock[T any] struct {
	items      [poolBlockSize]T
	generation [poolBlockSize]uint32
	filled     [poolBlockSize]bool
}

// Pool stores values of type T in fixed-size blocks. Slots are reused after
// deletion but indices of live entries never move, and pointers returned by
// Get stay valid until the entry is deleted.
type Pool[T any] struct {
	blocks    []*poolBlock[T]
	freeSlots []int
	nextIndex int
	count     int
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

func (p *Pool[T]) slot(index int) (*poolBlock[T], int) {
	blockIdx := index / poolBlockSize
	if index < 0 || blockIdx >= len(p.blocks) {
		return nil, 0
	}
	return p.blocks[blockIdx], index % poolBlockSize
}

// Spawn stores item and returns its handle.
func (p *Pool[T]) Spawn(item T) Handle {
	var index int
	if len(p.freeSlots) > 0 {
		index = p.freeSlots[len(p.freeSlots)-1]
		p.freeSlots = p.freeSlots[:len(p.freeSlots)-1]
	} else {
		index = p.nextIndex
		p.nextIndex++
		if index/poolBlockSize >= len(p.blocks) {
			p.blocks = append(p.blocks, &poolBlock[T]{})
		}
	}

	block, slotIdx := p.slot(index)
	block.items[slotIdx] = item
	block.filled[slotIdx] = true
	if block.generation[slotIdx] == 0 {
		block.generation[slotIdx] = 1
	}
	p.count++

	return newHandle(block.generation[slotIdx], uint32(index))
}

// Get returns a pointer to the entry, or nil if the handle is stale.
func (p *Pool[T]) Get(h Handle) *T {
	block, slotIdx := p.slot(int(h.Index()))
	if block == nil || !block.filled[slotIdx] || block.generation[slotIdx] != h.Generation() {
		return nil
	}
	return &block.items[slotIdx]
}

// Has reports whether the handle refers to a live entry.
func (p *Pool[T]) Has(h Handle) bool {
	return p.Get(h) != nil
}

// Delete removes the entry. It returns false if the handle was already stale,
// so deleting the same entry twice is harmless.
func (p *Pool[T]) Delete(h Handle) bool {
	block, slotIdx := p.slot(int(h.Index()))
	if block == nil || !block.filled[slotIdx] || block.generation[slotIdx] != h.Generation() {
		return false
	}

	var zero T
	block.items[slotIdx] = zero
	block.filled[slotIdx] = false
	block.generation[slotIdx]++
	if block.generation[slotIdx] == 0 {
		block.generation[slotIdx] = 1
	}
	p.freeSlots = append(p.freeSlots, int(h.Index()))
	p.count--
	return true
}

// Len returns the number of live entries.
func (p *Pool[T]) Len() int {
	return p.count
}

// Clear removes every entry. Outstanding handles become stale.
func (p *Pool[T]) Clear() {
	for i := 0; i < p.nextIndex; i++ {
		block, slotIdx := p.slot(i)
		if block.filled[slotIdx] {
			p.Delete(newHandle(block.generation[slotIdx], uint32(i)))
		}
	}
}

// Iter yields live entries in slot order. Entries spawned during iteration
// may or may not be visited; deleting entries during iteration is safe.
func (p *Pool[T]) Iter() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := 0; i < p.nextIndex; i++ {
			block, slotIdx := p.slot(i)
			if block == nil || !block.filled[slotIdx] {
				continue
			}
			if !yield(newHandle(block.generation[slotIdx], uint32(i)), &block.items[slotIdx]) {
				return
			}
		}
	}
}

// Values yields pointers to live entries in slot order.
func (p *Pool[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, item := range p.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
