package phoneme

import (
	"errors"
	"fmt"
	"strings"
)

// Phoneme is a coarsened sound class. The zero value is invalid.
// Ordering follows declaration order: consonants first, then vowels.
type Phoneme uint8

const (
	Invalid Phoneme = iota
	P
	B
	T
	D
	K
	G
	M
	N
	R
	F
	V
	S
	Z
	C
	J
	X
	H
	L
	Y
	W
	A
	E
	I
	O
	U
)

// ErrUnknown is returned when a name does not denote any phoneme.
var ErrUnknown = errors.New("unknown phoneme")

var names = [...]string{
	Invalid: "?",
	P:       "P", B: "B", T: "T", D: "D", K: "K", G: "G", M: "M", N: "N", R: "R", F: "F",
	V: "V", S: "S", Z: "Z", C: "C", J: "J", X: "X", H: "H", L: "L", Y: "Y", W: "W",
	A: "A", E: "E", I: "I", O: "O", U: "U",
}

// Consonants is the default consonant inventory in phoneme order.
var Consonants = []Phoneme{P, B, T, D, K, G, M, N, R, F, V, S, Z, C, J, X, H, L, Y, W}

// Vowels is the default vowel inventory in phoneme order.
var Vowels = []Phoneme{A, E, I, O, U}

func (p Phoneme) String() string {
	if int(p) < len(names) {
		return names[p]
	}
	return fmt.Sprintf("Phoneme(%d)", uint8(p))
}

// IsVowel reports whether p is one of A E I O U.
func (p Phoneme) IsVowel() bool {
	return p >= A && p <= U
}

// IsConsonant reports whether p is a valid non-vowel phoneme.
func (p Phoneme) IsConsonant() bool {
	return p >= P && p <= W
}

// Parse accepts a single phoneme name, case-insensitively.
func Parse(s string) (Phoneme, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := P; i <= U; i++ {
		if names[i] == s {
			return i, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// ParseList parses every name in names, preserving order.
func ParseList(list []string) ([]Phoneme, error) {
	out := make([]Phoneme, 0, len(list))
	for _, s := range list {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseLoan reads a loanword spelled one letter per phoneme ("ling").
// Hyphens mark an elided vowel in transliterations and are skipped.
func ParseLoan(s string) ([]Phoneme, error) {
	out := make([]Phoneme, 0, len(s))
	for _, r := range s {
		if r == '-' || r == ' ' {
			continue
		}
		p, err := Parse(string(r))
		if err != nil {
			return nil, fmt.Errorf("loan %q: %w", s, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// MarshalText encodes the phoneme by name so it can key JSON and YAML maps.
func (p Phoneme) MarshalText() ([]byte, error) {
	if p == Invalid || int(p) >= len(names) {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, uint8(p))
	}
	return []byte(names[p]), nil
}

// UnmarshalText decodes a phoneme name.
func (p *Phoneme) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
