package search

import (
	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
)

// pairIterator walks the ordered (first, second) consonant pairs of one slot
// in row-major order, second index fastest, never pairing a consonant with
// itself. The cursors point at the next pair to try.
type pairIterator struct {
	candidates []phoneme.Phoneme
	vowel      phoneme.Phoneme
	first      int
	second     int
}

func newPairIterator(candidates []phoneme.Phoneme, vowel phoneme.Phoneme) pairIterator {
	return pairIterator{candidates: candidates, vowel: vowel}
}

// next yields the next pair, or false once first has passed the end.
// With fewer than two candidates it is exhausted immediately.
func (it *pairIterator) next() (model.Number, bool) {
	n := len(it.candidates)
	for it.first < n {
		if it.second >= n {
			it.first++
			it.second = 0
			continue
		}
		f, s := it.first, it.second
		it.second++
		if f == s {
			continue
		}
		return model.Number{
			First:  it.candidates[f],
			Vowel:  it.vowel,
			Second: it.candidates[s],
		}, true
	}
	return model.Number{}, false
}

// carryUp skips every remaining pair that shares the current first consonant.
func (it *pairIterator) carryUp() {
	it.first++
	it.second = 0
}

func (it *pairIterator) reload() {
	it.first = 0
	it.second = 0
}

// pairs is the slot's radix: the number of ordered distinct pairs.
func (it *pairIterator) pairs() int {
	n := len(it.candidates)
	if n < 2 {
		return 0
	}
	return n * (n - 1)
}
