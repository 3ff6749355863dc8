package search

import (
	"github.com/ppiankov/bacitit/internal/model"
)

// odometer is a mixed-radix counter over the ten slot iterators. Slot 9
// varies fastest, slot 0 slowest. It is a plain value: copying it copies
// every cursor, and the candidate slices it shares are never written.
type odometer struct {
	slots   [model.SlotCount]pairIterator
	current model.Assignment
	done    bool
}

func newOdometer(slots [model.SlotCount]Slot) odometer {
	var o odometer
	for i, s := range slots {
		o.slots[i] = newPairIterator(s.Candidates, s.Vowel)
		n, ok := o.slots[i].next()
		if !ok {
			o.done = true
			continue
		}
		o.current[i] = n
	}
	return o
}

// advance ticks slot from and carries toward slot 0 while slots are
// exhausted. Exhausted slots are reloaded and re-primed on the way. It
// returns the slowest slot whose Number changed, or -1 once slot 0 is
// exhausted, which is permanent.
func (o *odometer) advance(from int) int {
	if o.done {
		return -1
	}
	for i := from; i >= 0; i-- {
		if n, ok := o.slots[i].next(); ok {
			o.current[i] = n
			return i
		}
		o.slots[i].reload()
		// Priming succeeded at construction, so a reloaded slot always yields.
		o.current[i], _ = o.slots[i].next()
	}
	o.done = true
	return -1
}

// reloadAbove restarts every slot faster than slot.
func (o *odometer) reloadAbove(slot int) {
	for j := slot + 1; j < model.SlotCount; j++ {
		o.slots[j].reload()
		o.current[j], _ = o.slots[j].next()
	}
}
