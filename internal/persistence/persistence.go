package persistence

import (
	"github.com/placescout/placescout/internal/core/repositories"
)

type Repositories struct {
	Regions   repositories.RegionRepository
	Snapshots repositories.SnapshotRepository
}
