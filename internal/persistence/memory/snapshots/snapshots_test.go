package snapshots_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/persistence/memory/snapshots"
	"github.com/placescout/placescout/internal/testutils/factories/serverfactory"
)

func TestSnapshotsMemoryRepo_PutGet(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()
	stored := serverfactory.BuildMany(10)

	require.NoError(t, repo.Put(ctx, 1000, stored))

	servers, err := repo.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, stored, servers)
}

func TestSnapshotsMemoryRepo_GetUnknown(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()

	_, err := repo.Get(ctx, 1000)
	assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)
}

func TestSnapshotsMemoryRepo_PutReplaces(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(10)))
	replacement := serverfactory.BuildMany(3)
	require.NoError(t, repo.Put(ctx, 1000, replacement))

	servers, err := repo.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, replacement, servers)
}

func TestSnapshotsMemoryRepo_StoresOwnedCopy(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()

	stored := serverfactory.BuildMany(2)
	require.NoError(t, repo.Put(ctx, 1000, stored))

	// later mutations of the caller's slice must not leak into the store
	stored[0].ID = "job-mutated"

	servers, err := repo.Get(ctx, 1000)
	require.NoError(t, err)
	assert.NotEqual(t, "job-mutated", servers[0].ID)
}

func TestSnapshotsMemoryRepo_Clear(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(5)))
	require.NoError(t, repo.Clear(ctx, 1000))

	_, err := repo.Get(ctx, 1000)
	assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)

	assert.NoError(t, repo.Clear(ctx, 1000))
}

func TestSnapshotsMemoryRepo_Count(t *testing.T) {
	ctx := context.TODO()
	repo := snapshots.New()

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(5)))
	require.NoError(t, repo.Put(ctx, 2000, serverfactory.BuildMany(1)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
