package memory

import (
	"github.com/placescout/placescout/internal/persistence"
	"github.com/placescout/placescout/internal/persistence/memory/regions"
	"github.com/placescout/placescout/internal/persistence/memory/snapshots"
)

func New() persistence.Repositories {
	return persistence.Repositories{
		Regions:   regions.New(),
		Snapshots: snapshots.New(),
	}
}
