package phoneme

import "strings"

// Latin spells phonemes one lowercase letter each.
func Latin(ps []Phoneme) string {
	var b strings.Builder
	b.Grow(len(ps))
	for _, p := range ps {
		b.WriteString(strings.ToLower(p.String()))
	}
	return b.String()
}

// Distinct returns the phonemes of ps in first-seen order without repeats.
func Distinct(ps []Phoneme) []Phoneme {
	seen := make(map[Phoneme]struct{}, len(ps))
	out := make([]Phoneme, 0, len(ps))
	for _, p := range ps {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
