// Package search enumerates digit-word assignments under the uniqueness
// constraint: across the ten slots no consonant is the first consonant twice
// and none is the second consonant twice.
//
// The Engine is an odometer of ten slot iterators. Instead of testing every
// tick of the counter it jumps straight past states that repeat a known
// conflict, so the work is bounded by valid and near-valid states rather than
// by the full cross product.
//
// The engine is single-threaded and pull-based. It has no clock and no
// cancellation of its own; callers bound it by counting Step calls or by
// checking a context between them.
package search

import (
	"math/big"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
)

// Slot is the search input for one digit: its ordered, deduplicated
// candidate consonants and its fixed vowel.
type Slot struct {
	Candidates []phoneme.Phoneme
	Vowel      phoneme.Phoneme
}

// Status is the outcome of one Step.
type Status uint8

const (
	// Pending means a conflict was resolved and no assignment is ready yet.
	Pending Status = iota
	// Found means Step returned a conflict-free assignment.
	Found
	// Exhausted means no further assignment exists. It is permanent.
	Exhausted
)

// Stats counts the engine's work since construction.
type Stats struct {
	States          int64 // tentative assignments examined
	Valid           int64 // conflict-free assignments returned
	FirstConflicts  int64
	SecondConflicts int64
}

// Engine enumerates conflict-free assignments in odometer order.
type Engine struct {
	odo         odometer
	from        int // lowest slot that may hold a conflict
	needAdvance bool
	stats       Stats
}

// New builds an engine over ten slots. A slot with fewer than two candidates
// leaves the engine exhausted from the start.
func New(slots [model.SlotCount]Slot) *Engine {
	return &Engine{odo: newOdometer(slots), from: 1}
}

// Step examines exactly one tentative assignment. On Found the assignment
// is returned; the next Step ticks the odometer first.
func (e *Engine) Step() (model.Assignment, Status) {
	if e.odo.done {
		return model.Assignment{}, Exhausted
	}
	if e.needAdvance {
		e.needAdvance = false
		changed := e.odo.advance(model.SlotCount - 1)
		if changed < 0 {
			return model.Assignment{}, Exhausted
		}
		e.from = changed
	}

	e.stats.States++
	c, found := findConflict(&e.odo.current, e.from)
	if !found {
		e.stats.Valid++
		e.needAdvance = true
		return e.odo.current, Found
	}

	switch c.kind {
	case firstConflict:
		e.stats.FirstConflicts++
	case secondConflict:
		e.stats.SecondConflicts++
	}

	var changed int
	e.odo, changed = e.odo.resolve(c)
	if changed < 0 {
		return model.Assignment{}, Exhausted
	}
	e.from = changed
	return model.Assignment{}, Pending
}

// Next returns the next conflict-free assignment, or false when exhausted.
func (e *Engine) Next() (model.Assignment, bool) {
	for {
		a, st := e.Step()
		switch st {
		case Found:
			return a, true
		case Exhausted:
			return model.Assignment{}, false
		}
	}
}

// Done reports global exhaustion.
func (e *Engine) Done() bool {
	return e.odo.done
}

// Stats returns the work counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Space is the size of the unpruned cross product: the product of every
// slot's pair count.
func Space(slots [model.SlotCount]Slot) *big.Int {
	total := big.NewInt(1)
	for _, s := range slots {
		it := newPairIterator(s.Candidates, s.Vowel)
		total.Mul(total, big.NewInt(int64(it.pairs())))
	}
	return total
}
