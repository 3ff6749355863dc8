package model

import (
	"strings"

	"github.com/ppiankov/bacitit/internal/phoneme"
)

// SlotCount is the number of digit slots (0-9)
const SlotCount = 10

// Number represents one digit-word: first consonant, vowel, second consonant
type Number struct {
	First  phoneme.Phoneme `json:"first"`  // Initial consonant
	Vowel  phoneme.Phoneme `json:"vowel"`  // Fixed per slot, never searched
	Second phoneme.Phoneme `json:"second"` // Final consonant
}

// String spells the number in Latin letters (e.g., "pat")
func (n Number) String() string {
	return phoneme.Latin([]phoneme.Phoneme{n.First, n.Vowel, n.Second})
}

// Assignment is one Number per digit, indexed by digit value
type Assignment [SlotCount]Number

// String joins the spelled numbers with ", "
func (a Assignment) String() string {
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

// CandidateNumber is a Number paired with its slot score
type CandidateNumber struct {
	Number Number  `json:"number"`
	Score  float64 `json:"score"` // weight(first) + weight(second) for the slot
}

// CandidateNumbers is a scored Assignment
type CandidateNumbers struct {
	Numbers [SlotCount]CandidateNumber `json:"numbers"`
	Score   float64                    `json:"score"` // Sum of the ten slot scores
}

// Assignment strips the scores
func (c CandidateNumbers) Assignment() Assignment {
	var a Assignment
	for i, n := range c.Numbers {
		a[i] = n.Number
	}
	return a
}
