package state

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScene() *Scene {
	return NewScene(700, 450, "#1a1a2e")
}

func mustShape(t *testing.T, kind Kind, x, y float64) Shape {
	t.Helper()
	sh, err := NewShape(kind, CenteredOrigin(x, y), "hsl(200, 80%, 60%)")
	require.NoError(t, err)
	return sh
}

func TestTallyMatchesSurvivors(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	rng := rand.New(rand.NewPCG(1, 2))

	var ids []string
	for i := 0; i < 30; i++ {
		k := Kinds[rng.IntN(len(Kinds))]
		sh, err := NewShape(k, RandomOrigin(rng, 700, 450), PickColor(rng, nil))
		require.NoError(t, err)
		s.Add(sh)
		ids = append(ids, sh.ID)
	}
	for i := 0; i < len(ids); i += 3 {
		require.True(t, s.Remove(ids[i]))
	}

	var want Tally
	for _, sh := range s.Shapes() {
		switch sh.Kind {
		case KindCircle:
			want.Circle++
		case KindRectangle:
			want.Rectangle++
		case KindTriangle:
			want.Triangle++
		}
	}
	require.Equal(t, want, s.Tally())
	require.Equal(t, 20, s.Tally().Total())
}

func TestCountIgnoresUnknownKinds(t *testing.T) {
	t.Parallel()
	got := Count([]Shape{{Kind: KindCircle}, {Kind: "hexagon"}, {Kind: KindTriangle}, {}})
	require.Equal(t, Tally{Circle: 1, Triangle: 1}, got)
}

func TestRemoveAtDecrementsOnlyThatKind(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	s.Add(mustShape(t, KindCircle, 100, 100))
	s.Add(mustShape(t, KindRectangle, 300, 100))
	s.Add(mustShape(t, KindTriangle, 500, 300))
	before := s.Tally()

	removed, ok := s.RemoveAt(Point{X: 300, Y: 100})
	require.True(t, ok)
	require.Equal(t, KindRectangle, removed.Kind)

	after := s.Tally()
	require.Equal(t, before.Rectangle-1, after.Rectangle)
	require.Equal(t, before.Circle, after.Circle)
	require.Equal(t, before.Triangle, after.Triangle)
}

func TestRemoveAtPicksTopmost(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	bottom := mustShape(t, KindRectangle, 200, 200)
	top := mustShape(t, KindCircle, 200, 200)
	s.Add(bottom)
	s.Add(top)

	removed, ok := s.RemoveAt(Point{X: 200, Y: 200})
	require.True(t, ok)
	require.Equal(t, top.ID, removed.ID)
	require.Equal(t, 1, s.Len())
}

func TestRemoveAtMissIsNoop(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	s.Add(mustShape(t, KindCircle, 100, 100))
	rev := s.Revision()

	_, ok := s.RemoveAt(Point{X: 600, Y: 400})
	require.False(t, ok)
	require.Equal(t, 1, s.Len())
	require.Equal(t, rev, s.Revision())
}

func TestSubscribeReceivesChangesUntilUnsubscribed(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	var got []Change
	unsub := s.Subscribe(func(c Change) { got = append(got, c) })
	require.Equal(t, 1, s.ListenerCount())

	s.Add(mustShape(t, KindTriangle, 100, 100))
	require.Len(t, got, 1)
	require.Equal(t, OpInsertShape, got[0].Op)
	require.Equal(t, Tally{Triangle: 1}, got[0].Tally)

	unsub()
	unsub()
	require.Equal(t, 0, s.ListenerCount())
	s.Add(mustShape(t, KindTriangle, 200, 100))
	require.Len(t, got, 1)
}

func TestShapesReturnsCopies(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	s.Add(mustShape(t, KindTriangle, 100, 100))

	shapes := s.Shapes()
	shapes[0].Points[0].X = 999
	require.NotEqual(t, 999.0, s.Shapes()[0].Points[0].X)
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestScene()
	src.Add(mustShape(t, KindCircle, 100, 100))
	src.Add(mustShape(t, KindRectangle, 200, 100))
	src.Add(mustShape(t, KindTriangle, 300, 100))

	dst := NewScene(700, 450, "#ffffff")
	require.NoError(t, dst.Load(src.Encode()))
	require.Equal(t, src.Shapes(), dst.Shapes())
	require.Equal(t, "#1a1a2e", dst.Background())
	require.Equal(t, Tally{Circle: 1, Rectangle: 1, Triangle: 1}, dst.Tally())
}

func TestLoadEmptySceneClears(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	s.Add(mustShape(t, KindCircle, 100, 100))
	require.NoError(t, s.Load(NewScene(700, 450, "").Encode()))
	require.Equal(t, Tally{}, s.Tally())
}

func TestLoadInvalidKeepsScene(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	s.Add(mustShape(t, KindCircle, 100, 100))
	before := s.Shapes()

	cases := map[string]SceneData{
		"unknown kind":   {Objects: []Shape{{Kind: "hexagon"}}},
		"zero radius":    {Objects: []Shape{{Kind: KindCircle}}},
		"flat rectangle": {Objects: []Shape{{Kind: KindRectangle, Width: 10}}},
		"two points":     {Objects: []Shape{{Kind: KindTriangle, Points: []Point{{}, {}}}}},
	}
	for name, d := range cases {
		err := s.Load(d)
		require.ErrorIs(t, err, ErrInvalidScene, name)
	}
	require.Equal(t, before, s.Shapes())
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	t.Parallel()
	s := newTestScene()
	require.NoError(t, s.Load(SceneData{Objects: []Shape{{Kind: KindCircle, Radius: 10}}}))
	require.NotEmpty(t, s.Shapes()[0].ID)
}
