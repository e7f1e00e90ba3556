package feature

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/roach88/beloved/internal/codec"
	"github.com/roach88/beloved/internal/slot"
	"github.com/roach88/beloved/internal/store"
	"github.com/roach88/beloved/internal/testutil"
)

const today = "2024-03-10"

type fixture struct {
	svc   *Service
	store *store.Store
	slots *slot.Memory
	clock *testutil.FixedClock
	ctx   context.Context
}

// newFixture creates a service over a loaded in-memory store with a fixed
// clock, sequential ids and a seeded random source.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.NewFixedClock(today)
	mem := slot.NewMemory()
	st := store.New(mem, codec.Default(), store.WithClock(clock))
	ctx := context.Background()
	st.Load(ctx)

	svc := New(st,
		WithClock(clock),
		WithIDs(testutil.NewSequentialIDs("id")),
		WithRand(rand.NewPCG(7, 11)),
	)
	return &fixture{svc: svc, store: st, slots: mem, clock: clock, ctx: ctx}
}
