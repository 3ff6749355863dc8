// Package weight turns a recipe's populations and loanwords into per-digit
// consonant weights.
//
// Every language gets a regular weight, its population divided by the sum of
// all populations. A consonant's weight for a digit is the sum of the regular
// weights of the languages whose loanword for that digit contains it; a
// consonant repeated inside one loanword counts once for that language.
package weight

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/bacitit/internal/model"
	"github.com/ppiankov/bacitit/internal/phoneme"
	"github.com/ppiankov/bacitit/internal/recipe"
)

var (
	ErrBadDigit          = errors.New("meaning is not a digit 0-9")
	ErrDuplicateDigit    = errors.New("digit defined twice")
	ErrMissingPopulation = errors.New("no population for language")
	ErrNoPopulation      = errors.New("total population is zero")
)

// Weights maps a consonant to its aggregate weight for one slot.
type Weights map[phoneme.Phoneme]float64

// Get returns the weight of p, 0 when absent.
func (w Weights) Get(p phoneme.Phoneme) float64 {
	return w[p]
}

// Table holds the weights of every digit slot.
type Table [model.SlotCount]Weights

// Prepared is the output of Prepare.
type Prepared struct {
	Table     Table
	WeightSum float64
	Regular   map[string]float64 // language tag -> population / WeightSum
	Origins   []model.Origin
}

// Prepare computes the weight table. Only consonants of inv are kept, so no
// slot ever carries a vowel key. Slots without a word get an empty map.
func Prepare(r *recipe.Recipe, inv phoneme.Inventory) (*Prepared, error) {
	var sum float64
	for _, l := range r.Languages {
		sum += l.Population
	}
	if sum <= 0 {
		return nil, ErrNoPopulation
	}

	populations := r.Populations()
	regular := make(map[string]float64, len(populations))
	for lang, pop := range populations {
		regular[lang] = pop / sum
	}

	p := &Prepared{WeightSum: sum, Regular: regular}
	for i := range p.Table {
		p.Table[i] = Weights{}
	}

	var defined [model.SlotCount]bool
	for _, word := range r.Words {
		digit, err := ParseDigit(word.Meaning)
		if err != nil {
			return nil, err
		}
		if defined[digit] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDigit, digit)
		}
		defined[digit] = true

		for _, o := range word.Origins {
			rw, ok := regular[o.Language]
			if !ok {
				return nil, fmt.Errorf("%w %q (digit %d)", ErrMissingPopulation, o.Language, digit)
			}
			loan, err := o.Phonemes()
			if err != nil {
				return nil, fmt.Errorf("digit %d: %w", digit, err)
			}
			for _, ph := range phoneme.Distinct(loan) {
				if inv.IsConsonant(ph) {
					p.Table[digit][ph] += rw
				}
			}
			p.Origins = append(p.Origins, model.Origin{
				Digit:         digit,
				Language:      o.Language,
				Population:    populations[o.Language],
				RegularWeight: rw,
				Word:          o.Word,
				IPA:           o.IPA,
				Loan:          phoneme.Latin(loan),
			})
		}
	}

	sort.SliceStable(p.Origins, func(i, j int) bool {
		return p.Origins[i].Digit < p.Origins[j].Digit
	})
	return p, nil
}

// ParseDigit parses a digit label in 0-9.
func ParseDigit(meaning string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(meaning))
	if err != nil || d < 0 || d >= model.SlotCount {
		return 0, fmt.Errorf("%w: %q", ErrBadDigit, meaning)
	}
	return d, nil
}

// Candidates lists the consonants slot searches, deduplicated, in the order
// the slot iterator walks them.
func Candidates(w Weights, inv phoneme.Inventory, mode, order string) []phoneme.Phoneme {
	out := make([]phoneme.Phoneme, 0, len(inv.Consonants))
	for _, c := range inv.Consonants {
		if _, ok := w[c]; ok || mode == model.CandidatesAll {
			out = append(out, c)
		}
	}
	if order == model.OrderWeight {
		sort.SliceStable(out, func(i, j int) bool {
			return w[out[i]] > w[out[j]]
		})
	}
	return out
}
