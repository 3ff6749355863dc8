package recipe

import (
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/bacitit/internal/phoneme"
	"golang.org/x/text/language"
)

var (
	ErrNoWords         = errors.New("recipe has no words")
	ErrNoLanguages     = errors.New("recipe has no languages")
	ErrBadPopulation   = errors.New("population must be a finite non-negative number")
	ErrDuplicateLang   = errors.New("language listed twice")
	ErrNoPronunciation = errors.New("origin has neither ipa nor loan")
)

// Recipe lists the source languages with their speaker populations and,
// per word, the loanwords each language contributes.
type Recipe struct {
	Languages []Language `json:"super_languages" yaml:"super_languages"`
	Words     []Word     `json:"super_words" yaml:"super_words"`
}

// Language is a source language weighted by its population.
type Language struct {
	Language   string  `json:"language" yaml:"language"`
	Population float64 `json:"population" yaml:"population"`
}

// Word is one meaning (for numerals, the digit label) and its origins.
type Word struct {
	Meaning string   `json:"meaning" yaml:"meaning"`
	Origins []Origin `json:"origins" yaml:"origins"`
}

// Origin is the word for a meaning in one source language.
// Loan holds the phoneme spelling; when empty it is derived from IPA.
type Origin struct {
	Language string `json:"language" yaml:"language"`
	Word     string `json:"word,omitempty" yaml:"word,omitempty"`
	IPA      string `json:"ipa,omitempty" yaml:"ipa,omitempty"`
	Loan     string `json:"loan,omitempty" yaml:"loan,omitempty"`
}

// Phonemes returns the loanword as phonemes.
func (o Origin) Phonemes() ([]phoneme.Phoneme, error) {
	if o.Loan != "" {
		return phoneme.ParseLoan(o.Loan)
	}
	if o.IPA != "" {
		return phoneme.FromIPA(o.IPA), nil
	}
	return nil, fmt.Errorf("%s %q: %w", o.Language, o.Word, ErrNoPronunciation)
}

// Validate checks the recipe and canonicalizes every language tag in place.
func (r *Recipe) Validate() error {
	if len(r.Languages) == 0 {
		return ErrNoLanguages
	}
	if len(r.Words) == 0 {
		return ErrNoWords
	}

	seen := make(map[string]bool, len(r.Languages))
	for i := range r.Languages {
		l := &r.Languages[i]
		tag, err := canonical(l.Language)
		if err != nil {
			return err
		}
		if seen[tag] {
			return fmt.Errorf("%w: %s", ErrDuplicateLang, tag)
		}
		seen[tag] = true
		l.Language = tag

		if math.IsNaN(l.Population) || math.IsInf(l.Population, 0) || l.Population < 0 {
			return fmt.Errorf("%s: %w", tag, ErrBadPopulation)
		}
	}

	for i := range r.Words {
		for j := range r.Words[i].Origins {
			o := &r.Words[i].Origins[j]
			tag, err := canonical(o.Language)
			if err != nil {
				return fmt.Errorf("word %q: %w", r.Words[i].Meaning, err)
			}
			o.Language = tag
			if _, err := o.Phonemes(); err != nil {
				return fmt.Errorf("word %q: %w", r.Words[i].Meaning, err)
			}
		}
	}
	return nil
}

// Complement fills every missing loan from the origin's IPA.
func (r *Recipe) Complement() {
	for i := range r.Words {
		for j := range r.Words[i].Origins {
			o := &r.Words[i].Origins[j]
			if o.Loan == "" && o.IPA != "" {
				o.Loan = phoneme.Latin(phoneme.FromIPA(o.IPA))
			}
		}
	}
}

// Populations maps each canonical language tag to its population.
func (r *Recipe) Populations() map[string]float64 {
	out := make(map[string]float64, len(r.Languages))
	for _, l := range r.Languages {
		out[l.Language] = l.Population
	}
	return out
}

func canonical(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("language %q: %w", code, err)
	}
	return tag.String(), nil
}
