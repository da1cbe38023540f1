package document

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"PaintBoard/internal/state"
)

func sceneWithOneOfEach(t *testing.T) *state.Scene {
	t.Helper()
	s := state.NewScene(700, 450, "#1a1a2e")
	for i, k := range state.Kinds {
		sh, err := state.NewShape(k, state.CenteredOrigin(float64(100+150*i), 200), "hsl(150, 70%, 55%)")
		require.NoError(t, err)
		s.Add(sh)
	}
	return s
}

func TestMarshalParseRoundTrip(t *testing.T) {
	t.Parallel()
	src := sceneWithOneOfEach(t)
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	data, err := Marshal(New("Sunset study", src.Encode(), now))
	require.NoError(t, err)

	p, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, "Sunset study", p.Title)
	require.Equal(t, "2026-10-15T09:30:00Z", p.Timestamp)
	require.Equal(t, state.Tally{Circle: 1, Rectangle: 1, Triangle: 1}, p.Tally())

	dst := state.NewScene(700, 450, "")
	require.NoError(t, dst.Load(*p.Canvas))
	require.Equal(t, src.Shapes(), dst.Shapes())
}

func TestRoundTripEmptyScene(t *testing.T) {
	t.Parallel()
	data, err := Marshal(New("Blank", state.NewScene(700, 450, "#1a1a2e").Encode(), time.Now()))
	require.NoError(t, err)

	p, err := Parse(data)
	require.NoError(t, err)
	require.True(t, p.HasCanvas())
	require.Equal(t, state.Tally{}, p.Tally())
	require.Equal(t, "Blank", p.Title)
}

func TestExportWritesAllFields(t *testing.T) {
	t.Parallel()
	data, err := Marshal(New("x", state.SceneData{}, time.Now()))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "title")
	require.Contains(t, raw, "canvas")
	require.Contains(t, raw, "timestamp")
}

func TestParseTitleOnly(t *testing.T) {
	t.Parallel()
	p, err := Parse([]byte(`{"title":"Only a name"}`))
	require.NoError(t, err)
	require.Equal(t, "Only a name", p.Title)
	require.False(t, p.HasCanvas())
}

func TestParseIgnoresTimestamp(t *testing.T) {
	t.Parallel()
	p, err := Parse([]byte(`{"title":"t","canvas":{"objects":[]},"timestamp":42}`))
	require.NoError(t, err)
	require.Empty(t, p.Timestamp)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not json":       `{"title": `,
		"array":          `[1,2,3]`,
		"null":           `null`,
		"empty object":   `{}`,
		"title number":   `{"title": 3}`,
		"canvas string":  `{"title":"a","canvas":"nope"}`,
		"unknown kind":   `{"title":"a","canvas":{"objects":[{"type":"hexagon"}]}}`,
		"bad geometry":   `{"title":"a","canvas":{"objects":[{"type":"circle","radius":0}]}}`,
		"plain text":     `hello`,
		"empty document": ``,
	}
	for name, in := range cases {
		_, err := Parse([]byte(in))
		require.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestParseReportsField(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte(`{"title":"a","canvas":{"objects":[{"type":"star"}]}}`))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "canvas", fe.Field)
	require.ErrorIs(t, err, state.ErrUnknownKind)
}

func TestFileName(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Painting Title":         "Painting_Title.json",
		"  spaced   out  ":       "spaced_out.json",
		"a/b\\c:d*e?f":           "abcdef.json",
		"":                       "painting.json",
		"../..":                  "painting.json",
		"نقاشی من":               "نقاشی_من.json",
		"v1.2 final":             "v1.2_final.json",
		"<script>alert</script>": "scriptalertscript.json",
	}
	for in, want := range cases {
		require.Equal(t, want, FileName(in), in)
	}
}
