package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ErrCodeNotFound means the recipe file could not be opened.
	ErrCodeNotFound = "recipe_not_found"
	// ErrCodeInvalid means the file could not be decoded or failed validation.
	ErrCodeInvalid = "recipe_invalid"
)

// Error is a recipe loading failure tagged with a code and the file path.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code, or "" when err is not a recipe error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Loaded is a validated recipe with the digest of its source bytes.
type Loaded struct {
	Recipe *Recipe
	Path   string
	Digest string
}

// Load reads a JSON or YAML recipe (chosen by extension), validates it and
// fills missing loans from IPA.
func Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Path: path, Err: err}
	}

	r, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}

	return &Loaded{Recipe: r, Path: path, Digest: Digest(data)}, nil
}

// Decode parses recipe bytes. ext selects YAML for ".yaml"/".yml", JSON otherwise.
func Decode(data []byte, ext string) (*Recipe, error) {
	var r Recipe
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.Complement()
	return &r, nil
}

// Digest identifies recipe content for in-process memoization.
func Digest(data []byte) string {
	hash := sha256.Sum256(data)
	return "bacitit:v1:" + hex.EncodeToString(hash[:])
}
