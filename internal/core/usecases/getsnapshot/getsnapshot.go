package getsnapshot

import (
	"context"
	"errors"

	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/core/repositories"
)

var (
	ErrInvalidPlaceID = errors.New("place id must be a positive integer")
	ErrNoSnapshot     = errors.New("no servers have been scanned for this place")
	ErrUnableToObtain = errors.New("unable to obtain the stored snapshot")
)

type UseCase struct {
	snapshots repositories.SnapshotRepository
}

func New(snapshots repositories.SnapshotRepository) UseCase {
	return UseCase{
		snapshots: snapshots,
	}
}

// Execute returns the latest accumulated server list for a place,
// which may belong to a still-running scan.
func (uc UseCase) Execute(ctx context.Context, placeID int64) ([]server.Server, error) {
	if placeID <= 0 {
		return nil, ErrInvalidPlaceID
	}
	servers, err := uc.snapshots.Get(ctx, placeID)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, ErrUnableToObtain
	}
	return servers, nil
}
