package search

import (
	"math/rand"
	"testing"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultVowels = []phoneme.Phoneme{phoneme.A, phoneme.E, phoneme.I, phoneme.O, phoneme.U}

func makeSlots(candidates [model.SlotCount][]phoneme.Phoneme, vowels []phoneme.Phoneme) [model.SlotCount]Slot {
	var slots [model.SlotCount]Slot
	for i, c := range candidates {
		slots[i] = Slot{Candidates: c, Vowel: vowels[i%len(vowels)]}
	}
	return slots
}

// disjointPairs gives every slot two consonants no other slot uses.
func disjointPairs() [model.SlotCount][]phoneme.Phoneme {
	var c [model.SlotCount][]phoneme.Phoneme
	for i := range c {
		c[i] = []phoneme.Phoneme{phoneme.Consonants[2*i], phoneme.Consonants[2*i+1]}
	}
	return c
}

// reference enumerates valid assignments by plain backtracking, in the same
// order as the odometer (slot 0 slowest, row-major pairs), stopping at limit.
func reference(slots [model.SlotCount]Slot, limit int) []model.Assignment {
	var out []model.Assignment
	var cur model.Assignment
	var walk func(slot int) bool
	walk = func(slot int) bool {
		if slot == model.SlotCount {
			out = append(out, cur)
			return len(out) < limit
		}
		c := slots[slot].Candidates
		for f := range c {
			for s := range c {
				if f == s {
					continue
				}
				ok := true
				for j := 0; j < slot; j++ {
					if cur[j].First == c[f] || cur[j].Second == c[s] {
						ok = false
						break
					}
				}
				if !ok {
					continue
				}
				cur[slot] = model.Number{First: c[f], Vowel: slots[slot].Vowel, Second: c[s]}
				if !walk(slot + 1) {
					return false
				}
			}
		}
		return true
	}
	walk(0)
	return out
}

func collect(e *Engine, limit int) []model.Assignment {
	var out []model.Assignment
	for len(out) < limit {
		a, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out
}

func assertValid(t *testing.T, a model.Assignment, vowels []phoneme.Phoneme) {
	t.Helper()
	for i := range a {
		assert.NotEqual(t, a[i].First, a[i].Second, "slot %d pairs a consonant with itself", i)
		assert.Equal(t, vowels[i%len(vowels)], a[i].Vowel, "slot %d vowel", i)
		for j := 0; j < i; j++ {
			assert.NotEqual(t, a[j].First, a[i].First, "slots %d and %d share a first consonant", j, i)
			assert.NotEqual(t, a[j].Second, a[i].Second, "slots %d and %d share a second consonant", j, i)
		}
	}
}

func TestEngine_MinimumViable(t *testing.T) {
	slots := makeSlots(disjointPairs(), defaultVowels)
	e := New(slots)

	got := collect(e, 1<<20)
	require.NotEmpty(t, got)
	assert.Len(t, got, 1024, "two orderings per slot, no cross-slot conflicts")
	assert.True(t, e.Done())

	for _, a := range got {
		assertValid(t, a, defaultVowels)
	}
	assert.Equal(t, int64(1024), e.Stats().Valid)
	assert.Equal(t, int64(0), e.Stats().FirstConflicts+e.Stats().SecondConflicts)
}

func TestEngine_ScarceSlot(t *testing.T) {
	c := disjointPairs()
	c[4] = []phoneme.Phoneme{phoneme.M}
	e := New(makeSlots(c, defaultVowels))

	_, ok := e.Next()
	assert.False(t, ok)
	assert.True(t, e.Done())

	_, st := e.Step()
	assert.Equal(t, Exhausted, st)
}

func TestEngine_EmptySlot(t *testing.T) {
	c := disjointPairs()
	c[9] = nil
	e := New(makeSlots(c, defaultVowels))
	_, ok := e.Next()
	assert.False(t, ok)
}

func TestEngine_TwoConsonantsEverywhere(t *testing.T) {
	var c [model.SlotCount][]phoneme.Phoneme
	for i := range c {
		c[i] = []phoneme.Phoneme{phoneme.P, phoneme.T}
	}
	e := New(makeSlots(c, []phoneme.Phoneme{phoneme.A}))

	_, ok := e.Next()
	assert.False(t, ok, "two consonants cannot give ten distinct first consonants")
	assert.True(t, e.Done())
	assert.Positive(t, e.Stats().States)
	assert.Less(t, e.Stats().States, int64(100), "conflicts are skipped, not enumerated")
}

func TestEngine_MatchesReference(t *testing.T) {
	c := disjointPairs()
	c[1] = []phoneme.Phoneme{phoneme.P, phoneme.T, phoneme.D}
	c[8] = []phoneme.Phoneme{phoneme.P, phoneme.T, phoneme.H, phoneme.L}
	c[9] = []phoneme.Phoneme{phoneme.B, phoneme.H, phoneme.L, phoneme.W}
	slots := makeSlots(c, defaultVowels)

	want := reference(slots, 1<<20)
	got := collect(New(slots), 1<<20)
	require.NotEmpty(t, want)
	assert.Equal(t, want, got)
}

func TestEngine_MatchesReferenceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const limit = 3000

	for round := 0; round < 25; round++ {
		var c [model.SlotCount][]phoneme.Phoneme
		for i := range c {
			size := 2 + rng.Intn(4)
			perm := rng.Perm(len(phoneme.Consonants))[:size]
			for _, k := range perm {
				c[i] = append(c[i], phoneme.Consonants[k])
			}
		}
		slots := makeSlots(c, defaultVowels)

		want := reference(slots, limit)
		got := collect(New(slots), limit)
		require.Equal(t, want, got, "round %d", round)
		for _, a := range got {
			assertValid(t, a, defaultVowels)
		}
	}
}

func TestEngine_StepCountsStates(t *testing.T) {
	c := disjointPairs()
	c[1] = []phoneme.Phoneme{phoneme.P, phoneme.T, phoneme.D}
	e := New(makeSlots(c, defaultVowels))

	var pending, found int
	for {
		_, st := e.Step()
		if st == Exhausted {
			break
		}
		if st == Pending {
			pending++
		} else {
			found++
		}
	}
	s := e.Stats()
	assert.Equal(t, int64(found), s.Valid)
	// the final conflict may end in exhaustion instead of Pending
	assert.InDelta(t, float64(s.FirstConflicts+s.SecondConflicts), float64(pending), 1)
	assert.Equal(t, s.States, s.Valid+s.FirstConflicts+s.SecondConflicts)
}

func TestFindConflict(t *testing.T) {
	c := disjointPairs()
	o := newOdometer(makeSlots(c, defaultVowels))

	_, found := findConflict(&o.current, 0)
	assert.False(t, found)

	a := o.current
	a[6].First = a[2].First
	got, found := findConflict(&a, 1)
	require.True(t, found)
	assert.Equal(t, conflict{slot: 6, kind: firstConflict}, got)

	a = o.current
	a[3].Second = a[0].Second
	got, found = findConflict(&a, 1)
	require.True(t, found)
	assert.Equal(t, conflict{slot: 3, kind: secondConflict}, got)

	a[5].First = a[1].First
	got, _ = findConflict(&a, 4)
	assert.Equal(t, 5, got.slot, "scan starts at from")

	a = o.current
	a[7].First = a[0].First
	a[7].Second = a[1].Second
	got, _ = findConflict(&a, 1)
	assert.Equal(t, firstConflict, got.kind, "first consonant collision wins")
}

func TestResolve_IsPure(t *testing.T) {
	c := disjointPairs()
	c[1] = []phoneme.Phoneme{phoneme.P, phoneme.T, phoneme.D}
	o := newOdometer(makeSlots(c, defaultVowels))
	before := o

	next, changed := o.resolve(conflict{slot: 1, kind: firstConflict})
	assert.Equal(t, before, o, "input state untouched")
	assert.Equal(t, 1, changed)
	assert.Equal(t, phoneme.T, next.current[1].First, "P-first pairs skipped")
}

func TestResolve_SecondConflictAdvances(t *testing.T) {
	c := disjointPairs()
	c[1] = []phoneme.Phoneme{phoneme.T, phoneme.B, phoneme.D}
	o := newOdometer(makeSlots(c, defaultVowels))
	// slot 0 = (P, B); slot 1 = (T, B) collides on B as second consonant.
	require.Equal(t, phoneme.B, o.current[1].Second)

	next, changed := o.resolve(conflict{slot: 1, kind: secondConflict})
	assert.Equal(t, 1, changed)
	assert.Equal(t, phoneme.T, next.current[1].First)
	assert.Equal(t, phoneme.D, next.current[1].Second)
}

func TestResolve_CarriesAndReloads(t *testing.T) {
	c := disjointPairs()
	c[1] = []phoneme.Phoneme{phoneme.P, phoneme.B}
	o := newOdometer(makeSlots(c, defaultVowels))
	// Move slot 3 off its first pair so the reload is observable.
	o.advance(3)
	require.Equal(t, c[3][1], o.current[3].First)

	// Slot 1 = (P, B) collides with slot 0 = (P, B). Carrying past P leaves
	// (B, P), which is still a candidate, so no carry into slot 0 yet.
	next, changed := o.resolve(conflict{slot: 1, kind: firstConflict})
	assert.Equal(t, 1, changed)
	assert.Equal(t, phoneme.B, next.current[1].First)
	assert.Equal(t, c[3][0], next.current[3].First, "faster slots restart")

	// Carrying slot 1 again exhausts it and ticks slot 0.
	next2, changed := next.resolve(conflict{slot: 1, kind: firstConflict})
	assert.Equal(t, 0, changed)
	assert.Equal(t, phoneme.B, next2.current[0].First)
	assert.Equal(t, phoneme.P, next2.current[1].First, "slot 1 reloaded")
}

func TestSpace(t *testing.T) {
	c := disjointPairs()
	c[0] = []phoneme.Phoneme{phoneme.P, phoneme.B, phoneme.T}
	assert.Equal(t, "3072", Space(makeSlots(c, defaultVowels)).String())

	c[5] = nil
	assert.Equal(t, "0", Space(makeSlots(c, defaultVowels)).String())
}
