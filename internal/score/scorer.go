package score

import (
	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/weight"
)

// Scorer scores numbers against the per-slot consonant weights
type Scorer struct {
	table weight.Table
}

// NewScorer creates a new scorer
func NewScorer(table weight.Table) *Scorer {
	return &Scorer{table: table}
}

// Number scores one Number in its slot: the weight of its first consonant
// plus the weight of its second, each 0 when the slot has no weight for it
func (s *Scorer) Number(slot int, n model.Number) float64 {
	w := s.table[slot]
	return w.Get(n.First) + w.Get(n.Second)
}

// Score scores a whole assignment; the total is the sum of the slot scores
func (s *Scorer) Score(a model.Assignment) model.CandidateNumbers {
	var c model.CandidateNumbers
	for i, n := range a {
		c.Numbers[i] = model.CandidateNumber{
			Number: n,
			Score:  s.Number(i, n),
		}
		c.Score += c.Numbers[i].Score
	}
	return c
}

// Record is the running-best accumulator. The zero value has retained nothing.
type Record struct {
	best     float64
	retained int64
}

// Admit reports whether c is retained: its total is at least the best total
// retained so far (ties are retained). It returns the updated accumulator;
// the receiver is unchanged.
func (r Record) Admit(c model.CandidateNumbers) (Record, bool) {
	if r.retained > 0 && c.Score < r.best {
		return r, false
	}
	return Record{best: c.Score, retained: r.retained + 1}, true
}

// Best returns the best retained total and whether anything was retained
func (r Record) Best() (float64, bool) {
	return r.best, r.retained > 0
}

// Retained returns how many assignments were admitted
func (r Record) Retained() int64 {
	return r.retained
}
