package score

import (
	"testing"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
	"github.com/ppiankov/bacitit/internal/weight"
	"github.com/stretchr/testify/assert"
)

func tableWith(w weight.Weights) weight.Table {
	var t weight.Table
	for i := range t {
		t[i] = weight.Weights{}
	}
	t[0] = w
	return t
}

func TestScorer_Number(t *testing.T) {
	s := NewScorer(tableWith(weight.Weights{phoneme.P: 1.0, phoneme.T: 0.5}))

	tests := []struct {
		name string
		n    model.Number
		want float64
	}{
		{"both weighted", model.Number{First: phoneme.P, Vowel: phoneme.A, Second: phoneme.T}, 1.5},
		{"reversed", model.Number{First: phoneme.T, Vowel: phoneme.A, Second: phoneme.P}, 1.5},
		{"second missing", model.Number{First: phoneme.P, Vowel: phoneme.A, Second: phoneme.K}, 1.0},
		{"both missing", model.Number{First: phoneme.K, Vowel: phoneme.A, Second: phoneme.G}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Number(0, tt.n))
		})
	}

	assert.Equal(t, 0.0, s.Number(1, tests[0].n), "other slots carry no weight")
}

func TestScorer_Score_Additive(t *testing.T) {
	var table weight.Table
	var a model.Assignment
	for i := range table {
		table[i] = weight.Weights{
			phoneme.Consonants[2*i]:   float64(i) / 10,
			phoneme.Consonants[2*i+1]: 0.25,
		}
		a[i] = model.Number{First: phoneme.Consonants[2*i], Vowel: phoneme.A, Second: phoneme.Consonants[2*i+1]}
	}
	s := NewScorer(table)

	c := s.Score(a)
	var sum float64
	for i, n := range c.Numbers {
		assert.Equal(t, a[i], n.Number)
		assert.Equal(t, s.Number(i, a[i]), n.Score)
		sum += n.Score
	}
	assert.Equal(t, sum, c.Score)
	assert.InDelta(t, 4.5+2.5, c.Score, 1e-9)
	assert.Equal(t, a, c.Assignment())
}

func TestRecord_Admit(t *testing.T) {
	var r Record
	_, ok := r.Best()
	assert.False(t, ok)

	scores := []float64{1.0, 0.5, 1.0, 2.0, 1.9, 2.0, 3.5}
	want := []bool{true, false, true, true, false, true, true}

	var kept []float64
	for i, sc := range scores {
		next, admitted := r.Admit(model.CandidateNumbers{Score: sc})
		assert.Equal(t, want[i], admitted, "score %v", sc)
		if admitted {
			kept = append(kept, sc)
		} else {
			assert.Equal(t, r, next, "rejection leaves the accumulator unchanged")
		}
		r = next
	}

	assert.Equal(t, []float64{1.0, 1.0, 2.0, 2.0, 3.5}, kept)
	assert.IsNonDecreasing(t, kept)
	best, ok := r.Best()
	assert.True(t, ok)
	assert.Equal(t, 3.5, best)
	assert.Equal(t, int64(5), r.Retained())
}

func TestRecord_AdmitsZeroFirst(t *testing.T) {
	var r Record
	r, ok := r.Admit(model.CandidateNumbers{Score: 0})
	assert.True(t, ok, "the first assignment is always retained")
	_, ok = r.Admit(model.CandidateNumbers{Score: 0})
	assert.True(t, ok, "ties are retained")
}
