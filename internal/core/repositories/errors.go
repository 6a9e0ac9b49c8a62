package repositories

import (
	"errors"
)

var (
	ErrRegionNotFound   = errors.New("no region is cached for the requested server")
	ErrSnapshotNotFound = errors.New("no snapshot is stored for the requested place")
)
