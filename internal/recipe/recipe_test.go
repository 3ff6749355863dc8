package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/bacitit/internal/phoneme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "super_languages": [
    {"language": "EN", "population": 1500},
    {"language": "zh", "population": 1100}
  ],
  "super_words": [
    {"meaning": "0", "origins": [
      {"language": "en", "word": "zero", "ipa": "ˈzɪɹoʊ"},
      {"language": "zh", "word": "零", "loan": "lin"}
    ]}
  ]
}`

const sampleYAML = `
super_languages:
  - language: es
    population: 550
super_words:
  - meaning: "1"
    origins:
      - language: es
        word: uno
        ipa: ˈuno
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	loaded, err := Load(writeFile(t, "recipe.json", sampleJSON))
	require.NoError(t, err)

	r := loaded.Recipe
	assert.Equal(t, "en", r.Languages[0].Language, "tags are canonicalized")
	assert.Equal(t, "zirou", r.Words[0].Origins[0].Loan, "loan derived from IPA")
	assert.Equal(t, "lin", r.Words[0].Origins[1].Loan, "explicit loan kept")
	assert.Equal(t, map[string]float64{"en": 1500, "zh": 1100}, r.Populations())
	assert.NotEmpty(t, loaded.Digest)
}

func TestLoad_YAML(t *testing.T) {
	loaded, err := Load(writeFile(t, "recipe.yaml", sampleYAML))
	require.NoError(t, err)

	ps, err := loaded.Recipe.Words[0].Origins[0].Phonemes()
	require.NoError(t, err)
	assert.Equal(t, []phoneme.Phoneme{phoneme.U, phoneme.N, phoneme.O}, ps)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ErrCodeNotFound, Code(err))

	_, err = Load(writeFile(t, "bad.json", "{"))
	assert.Equal(t, ErrCodeInvalid, Code(err))

	assert.Equal(t, "", Code(assert.AnError))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Recipe
		want error
	}{
		{
			name: "no languages",
			r:    Recipe{Words: []Word{{Meaning: "0"}}},
			want: ErrNoLanguages,
		},
		{
			name: "no words",
			r:    Recipe{Languages: []Language{{Language: "en", Population: 1}}},
			want: ErrNoWords,
		},
		{
			name: "negative population",
			r: Recipe{
				Languages: []Language{{Language: "en", Population: -1}},
				Words:     []Word{{Meaning: "0"}},
			},
			want: ErrBadPopulation,
		},
		{
			name: "duplicate language",
			r: Recipe{
				Languages: []Language{{Language: "en", Population: 1}, {Language: "EN", Population: 2}},
				Words:     []Word{{Meaning: "0"}},
			},
			want: ErrDuplicateLang,
		},
		{
			name: "origin without pronunciation",
			r: Recipe{
				Languages: []Language{{Language: "en", Population: 1}},
				Words:     []Word{{Meaning: "0", Origins: []Origin{{Language: "en", Word: "zero"}}}},
			},
			want: ErrNoPronunciation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.r.Validate(), tt.want)
		})
	}
}

func TestValidate_BadTag(t *testing.T) {
	r := Recipe{
		Languages: []Language{{Language: "not a tag!", Population: 1}},
		Words:     []Word{{Meaning: "0"}},
	}
	assert.Error(t, r.Validate())
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest([]byte("a")), Digest([]byte("a")))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}
