package phoneme

import (
	"errors"
	"fmt"
)

var (
	ErrNoConsonants = errors.New("consonant list is empty")
	ErrNoVowels     = errors.New("vowel list is empty")
)

// Inventory is the process-wide ordered consonant and vowel lists.
type Inventory struct {
	Consonants []Phoneme
	Vowels     []Phoneme

	consonant map[Phoneme]bool
}

// DefaultInventory returns the full built-in inventory.
func DefaultInventory() Inventory {
	inv, _ := NewInventory(Consonants, Vowels)
	return inv
}

// NewInventory validates the two lists: both non-empty, disjoint by class,
// no repeats. Order is preserved.
func NewInventory(consonants, vowels []Phoneme) (Inventory, error) {
	if len(consonants) == 0 {
		return Inventory{}, ErrNoConsonants
	}
	if len(vowels) == 0 {
		return Inventory{}, ErrNoVowels
	}

	inv := Inventory{
		Consonants: append([]Phoneme(nil), consonants...),
		Vowels:     append([]Phoneme(nil), vowels...),
		consonant:  make(map[Phoneme]bool, len(consonants)),
	}
	for _, p := range consonants {
		if !p.IsConsonant() {
			return Inventory{}, fmt.Errorf("%s is not a consonant", p)
		}
		if inv.consonant[p] {
			return Inventory{}, fmt.Errorf("consonant %s listed twice", p)
		}
		inv.consonant[p] = true
	}
	seen := make(map[Phoneme]bool, len(vowels))
	for _, p := range vowels {
		if !p.IsVowel() {
			return Inventory{}, fmt.Errorf("%s is not a vowel", p)
		}
		if seen[p] {
			return Inventory{}, fmt.Errorf("vowel %s listed twice", p)
		}
		seen[p] = true
	}
	return inv, nil
}

// IsConsonant reports membership in the inventory's consonant list.
func (inv Inventory) IsConsonant(p Phoneme) bool {
	return inv.consonant[p]
}

// Vowel returns the fixed vowel of a digit slot.
func (inv Inventory) Vowel(slot int) Phoneme {
	return inv.Vowels[slot%len(inv.Vowels)]
}
