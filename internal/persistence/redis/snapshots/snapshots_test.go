package snapshots_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/persistence/redis/snapshots"
	"github.com/placescout/placescout/internal/testutils/factories/serverfactory"
	"github.com/placescout/placescout/internal/testutils/testredis"
)

func TestSnapshotsRedisRepo_PutGet(t *testing.T) {
	ctx := context.TODO()
	client := testredis.MakeClient(t)
	repo := snapshots.New(client)

	stored := serverfactory.BuildMany(10, serverfactory.WithPlayerTokens("t1", "t2"))
	require.NoError(t, repo.Put(ctx, 1000, stored))

	servers, err := repo.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, stored, servers)
}

func TestSnapshotsRedisRepo_GetUnknown(t *testing.T) {
	ctx := context.TODO()
	client := testredis.MakeClient(t)
	repo := snapshots.New(client)

	_, err := repo.Get(ctx, 1000)
	assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)
}

func TestSnapshotsRedisRepo_PutReplaces(t *testing.T) {
	ctx := context.TODO()
	client := testredis.MakeClient(t)
	repo := snapshots.New(client)

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(10)))
	replacement := serverfactory.BuildMany(3)
	require.NoError(t, repo.Put(ctx, 1000, replacement))

	servers, err := repo.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, replacement, servers)
}

func TestSnapshotsRedisRepo_Clear(t *testing.T) {
	ctx := context.TODO()
	client := testredis.MakeClient(t)
	repo := snapshots.New(client)

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(5)))
	require.NoError(t, repo.Clear(ctx, 1000))

	_, err := repo.Get(ctx, 1000)
	assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)
}

func TestSnapshotsRedisRepo_Count(t *testing.T) {
	ctx := context.TODO()
	client := testredis.MakeClient(t)
	repo := snapshots.New(client)

	require.NoError(t, repo.Put(ctx, 1000, serverfactory.BuildMany(5)))
	require.NoError(t, repo.Put(ctx, 2000, serverfactory.BuildMany(1)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
