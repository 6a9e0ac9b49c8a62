package snapshots

import (
	"context"
	"sync"

	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/core/repositories"
)

type Repository struct {
	items map[int64][]server.Server
	mutex sync.RWMutex
}

func New() *Repository {
	return &Repository{
		items: make(map[int64][]server.Server),
	}
}

func (r *Repository) Put(_ context.Context, placeID int64, servers []server.Server) error {
	// keep an owned copy, the scanner mutates its accumulated slice in place
	stored := make([]server.Server, len(servers))
	copy(stored, servers)

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.items[placeID] = stored
	return nil
}

func (r *Repository) Get(_ context.Context, placeID int64) ([]server.Server, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	stored, ok := r.items[placeID]
	if !ok {
		return nil, repositories.ErrSnapshotNotFound
	}
	servers := make([]server.Server, len(stored))
	copy(servers, stored)
	return servers, nil
}

func (r *Repository) Clear(_ context.Context, placeID int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.items, placeID)
	return nil
}

func (r *Repository) Count(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items), nil
}
