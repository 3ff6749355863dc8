package phoneme

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// affricates are matched before single symbols.
var affricates = map[string]Phoneme{
	"tʃ": C, "tɕ": C, "ʈʂ": C,
	"dʒ": J, "dʑ": J, "ɖʐ": J,
}

var ipaSymbols = map[rune]Phoneme{
	'p': P,
	'b': B,
	't': T, 'ʈ': T,
	'd': D, 'ɖ': D,
	'k': K, 'q': K, 'c': K,
	'g': G, 'ɡ': G, 'ɢ': G, 'ɟ': G,
	'm': M, 'ɱ': M,
	'n': N, 'ŋ': N, 'ɲ': N, 'ɳ': N, 'ɴ': N,
	'r': R, 'ɾ': R, 'ɹ': R, 'ʁ': R, 'ʀ': R, 'ɽ': R, 'ɻ': R,
	'f': F, 'ɸ': F,
	'v': V, 'β': V, 'ʋ': V,
	's': S, 'θ': S,
	'z': Z, 'ð': Z,
	'ʃ': C, 'ʂ': C, 'ɕ': C,
	'ʒ': J, 'ʐ': J, 'ʑ': J,
	'x': X, 'χ': X, 'ɣ': X,
	'h': H, 'ɦ': H, 'ħ': H, 'ʕ': H,
	'l': L, 'ɫ': L, 'ɭ': L, 'ʎ': L, 'ɬ': L,
	'j': Y,
	'w': W, 'ɥ': W,

	'a': A, 'ɑ': A, 'æ': A, 'ɐ': A, 'ʌ': A, 'ɒ': A,
	'e': E, 'ɛ': E, 'ə': E, 'ɜ': E, 'ø': E, 'œ': E, 'ɘ': E,
	'i': I, 'ɪ': I, 'ɨ': I, 'y': I, 'ʏ': I,
	'o': O, 'ɔ': O, 'ɤ': O, 'ɵ': O,
	'u': U, 'ʊ': U, 'ɯ': U, 'ʉ': U,
}

// FromIPA segments an IPA transcription into phonemes. Diacritics, tie bars,
// stress and length marks, syllable dots and tone letters are dropped;
// symbols without a mapping are skipped.
func FromIPA(ipa string) []Phoneme {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(ipa)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	runes := []rune(b.String())

	out := make([]Phoneme, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) {
			if p, ok := affricates[string(runes[i:i+2])]; ok {
				out = append(out, p)
				i++
				continue
			}
		}
		if p, ok := ipaSymbols[runes[i]]; ok {
			out = append(out, p)
		}
	}
	return out
}
