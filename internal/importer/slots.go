package importer

import "github.com/JonMunkholm/pm3import/internal/pm3"

// SlotPool hands out player record indices. Allocation scans forward from the
// last slot handed out and never revisits earlier slots.
type SlotPool struct {
	used []bool
	next int
}

// NewSlotPool returns a pool with the given capacity.
func NewSlotPool(capacity int) *SlotPool {
	return &SlotPool{used: make([]bool, capacity)}
}

// NewPlayerPool returns a pool covering every player record.
func NewPlayerPool() *SlotPool {
	return NewSlotPool(pm3.NumPlayers)
}

// Allocate returns the next free slot, or false once the pool is exhausted.
func (p *SlotPool) Allocate() (int, bool) {
	for p.next < len(p.used) && p.used[p.next] {
		p.next++
	}
	if p.next >= len(p.used) {
		return 0, false
	}
	idx := p.next
	p.used[idx] = true
	p.next++
	return idx, true
}

// Cap returns the pool capacity.
func (p *SlotPool) Cap() int {
	return len(p.used)
}
