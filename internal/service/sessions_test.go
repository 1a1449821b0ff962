package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"storefront/internal/repository"
)

func newTestSessions(t *testing.T, source RegionSource) *Sessions {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewSessions(SessionDeps{
		Repo:      store,
		Tx:        repository.NewMemoryTx(store),
		Regions:   source,
		Validator: NewFormValidator(func() time.Time { return testNow }),
	})
}

func TestSessions_OpenReturnsSameSession(t *testing.T) {
	r := newTestSessions(t, nil)
	a := r.Open("s1")
	b := r.Open("s1")
	c := r.Open("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Nil(t, a.Regions())
}

func TestSessions_CloseClearsCart(t *testing.T) {
	ctx := t.Context()
	r := newTestSessions(t, nil)
	s := r.Open("s1")
	require.NoError(t, s.Cart.AddItem(ctx, tenis(1)))

	require.NoError(t, r.Close(ctx, "s1"))
	require.NoError(t, r.Close(ctx, "s1"))

	fresh := r.Open("s1")
	assert.NotSame(t, s, fresh)
	snap, err := fresh.Cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestSessions_VisitBindsRegionsToForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockRegionSource(ctrl)
	source.EXPECT().FetchRegions(gomock.Any()).Return(testRegions, nil).Times(1)

	ctx := t.Context()
	r := newTestSessions(t, source)
	s := r.Open("s1")
	require.NoError(t, s.Cart.AddItem(ctx, tenis(1)))

	p := r.Visit(s)
	assert.Same(t, p, s.Regions())
	require.NoError(t, p.EnsureLoaded(ctx))

	fields := validFields()
	fields.Region = "AM"
	s.Form.Fill(fields)
	errs, err := s.Form.Validate(ctx)
	require.NoError(t, err)
	assert.Len(t, errs, 1)
}

func TestSessions_Expire(t *testing.T) {
	ctx := t.Context()
	r := newTestSessions(t, nil)
	clock := testNow
	r.now = func() time.Time { return clock }

	old := r.Open("old")
	require.NoError(t, old.Cart.AddItem(ctx, tenis(1)))

	clock = clock.Add(30 * time.Minute)
	r.Open("recent")

	clock = clock.Add(10 * time.Minute)
	n := r.Expire(ctx, 20*time.Minute)
	assert.Equal(t, 1, n)

	assert.NotSame(t, old, r.Open("old"))
	snap, err := r.Open("old").Cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestSessions_ExpireSparesSessionTouchedAfterScan(t *testing.T) {
	ctx := t.Context()
	r := newTestSessions(t, nil)
	clock := testNow
	r.now = func() time.Time { return clock }

	s := r.Open("busy")
	require.NoError(t, s.Cart.AddItem(ctx, tenis(2)))

	clock = clock.Add(time.Hour)
	cutoff := clock.Add(-20 * time.Minute)
	require.Equal(t, []string{"busy"}, r.staleIDs(cutoff))

	// the user comes back between the scan and the close
	assert.Same(t, s, r.Open("busy"))

	closed, err := r.closeIfStale(ctx, "busy", cutoff)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Same(t, s, r.Open("busy"))

	snap, err := s.Cart.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)
}
