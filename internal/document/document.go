// Package document reads and writes painting documents, the JSON files a
// painting is exported to and imported from.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"PaintBoard/internal/state"
)

var ErrMalformed = errors.New("malformed painting document")

// FieldError names the document field that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Painting is the export/import unit.
type Painting struct {
	Title     string           `json:"title"`
	Canvas    *state.SceneData `json:"canvas"`
	Timestamp string           `json:"timestamp"`
}

// New builds a document for title and scene stamped with now.
func New(title string, scene state.SceneData, now time.Time) Painting {
	return Painting{
		Title:     title,
		Canvas:    &scene,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// HasTitle reports whether the document carried a non-empty title.
func (p Painting) HasTitle() bool { return p.Title != "" }

// HasCanvas reports whether the document carried a scene.
func (p Painting) HasCanvas() bool { return p.Canvas != nil }

// Tally counts the shapes in the document's scene.
func (p Painting) Tally() state.Tally {
	if p.Canvas == nil {
		return state.Tally{}
	}
	return state.Count(p.Canvas.Objects)
}

// Marshal renders the document as indented JSON.
func Marshal(p Painting) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal painting: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a document. Every failure wraps ErrMalformed;
// nothing is returned unless the whole document is usable.
func Parse(data []byte) (Painting, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return Painting{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw == nil {
		return Painting{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	var p Painting
	if msg, ok := raw["title"]; ok && !isNull(msg) {
		if err := json.Unmarshal(msg, &p.Title); err != nil {
			return Painting{}, fmt.Errorf("%w: %w", ErrMalformed, &FieldError{Field: "title", Err: err})
		}
	}
	if msg, ok := raw["canvas"]; ok && !isNull(msg) {
		var scene state.SceneData
		dec := json.NewDecoder(bytes.NewReader(msg))
		if err := dec.Decode(&scene); err != nil {
			return Painting{}, fmt.Errorf("%w: %w", ErrMalformed, &FieldError{Field: "canvas", Err: err})
		}
		if err := scene.Validate(); err != nil {
			return Painting{}, fmt.Errorf("%w: %w", ErrMalformed, &FieldError{Field: "canvas", Err: err})
		}
		p.Canvas = &scene
	}
	if msg, ok := raw["timestamp"]; ok {
		// informational only
		_ = json.Unmarshal(msg, &p.Timestamp)
	}
	if !p.HasTitle() && !p.HasCanvas() {
		return Painting{}, fmt.Errorf("%w: neither title nor canvas present", ErrMalformed)
	}
	return p, nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = regexp.MustCompile(`[^\p{L}\p{N}_.-]+`)
)

// FileName turns a title into a filesystem-safe .json file name.
func FileName(title string) string {
	slug := whitespace.ReplaceAllString(strings.TrimSpace(title), "_")
	slug = unsafeName.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, ".")
	if slug == "" {
		slug = "painting"
	}
	return slug + ".json"
}
