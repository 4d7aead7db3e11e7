package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/matchday/season"
	"github.com/warp/matchday/season/store"
)

func match(id, home, away string, hs, as int) season.MatchRecord {
	return season.MatchRecord{
		ID:          id,
		HomeName:    home,
		AwayName:    away,
		HomeScore:   hs,
		AwayScore:   as,
		CommittedAt: time.Date(2026, 10, 18, 17, 0, 0, 0, time.UTC),
	}
}

func TestMemory_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.Append(ctx, match("m1", "Asnières", "Lyon", 2, 1)))
	require.NoError(t, m.Append(ctx, match("m2", "Asnières", "Colombes", 0, 0)))

	records, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "m2", records[0].ID)
	assert.Equal(t, "m1", records[1].ID)
}

func TestMemory_EmptyListIsNotNil(t *testing.T) {
	records, err := store.NewMemory().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestMemory_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.Append(ctx, match("m1", "Asnières", "Lyon", 2, 1)))
	err := m.Append(ctx, match("m1", "Asnières", "Lyon", 3, 1))

	assert.ErrorIs(t, err, season.ErrDuplicateMatchID)
	records, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].HomeScore)
}

func TestMemory_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.Append(ctx, match("m1", "Asnières", "Lyon", 2, 1)))

	records, _ := m.List(ctx)
	records[0].HomeScore = 9

	again, _ := m.List(ctx)
	assert.Equal(t, 2, again[0].HomeScore)
}
