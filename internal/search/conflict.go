package search

import (
	"github.com/ppiankov/bacitit/internal/model"
)

type conflictKind uint8

const (
	firstConflict  conflictKind = iota + 1 // first consonant repeats a slower slot's
	secondConflict                         // second consonant repeats a slower slot's
)

func (k conflictKind) String() string {
	switch k {
	case firstConflict:
		return "first"
	case secondConflict:
		return "second"
	default:
		return "none"
	}
}

type conflict struct {
	slot int
	kind conflictKind
}

// findConflict scans slots from..9 and reports the first slot whose first or
// second consonant is already used in the same role by a slower slot. Slots
// below from must already be conflict-free among themselves. A first
// consonant collision wins over a second consonant collision in the same slot.
func findConflict(a *model.Assignment, from int) (conflict, bool) {
	if from < 1 {
		from = 1
	}
	for i := from; i < model.SlotCount; i++ {
		for j := 0; j < i; j++ {
			if a[j].First == a[i].First {
				return conflict{slot: i, kind: firstConflict}, true
			}
		}
		for j := 0; j < i; j++ {
			if a[j].Second == a[i].Second {
				return conflict{slot: i, kind: secondConflict}, true
			}
		}
	}
	return conflict{}, false
}

// resolve moves the odometer to the next state that can clear c, without
// visiting the states in between. A first consonant conflict carries the slot
// past every pair sharing that consonant; a second consonant conflict only
// advances to the next pair. Exhaustion carries toward slot 0 like a normal
// tick, and every slot faster than c.slot restarts from its first pair.
//
// resolve works on a copy and returns it with the slowest changed slot, or -1
// when the enumeration is exhausted.
func (o odometer) resolve(c conflict) (odometer, int) {
	if c.kind == firstConflict {
		o.slots[c.slot].carryUp()
	}
	changed := o.advance(c.slot)
	if changed < 0 {
		return o, -1
	}
	o.reloadAbove(c.slot)
	return o, changed
}
