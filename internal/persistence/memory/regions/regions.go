package regions

import (
	"context"
	"sync"

	"github.com/placescout/placescout/internal/core/entities/region"
	"github.com/placescout/placescout/internal/core/repositories"
)

type Repository struct {
	items map[string]region.Region
	mutex sync.RWMutex
}

func New() *Repository {
	return &Repository{
		items: make(map[string]region.Region),
	}
}

func (r *Repository) Get(_ context.Context, serverID string) (region.Region, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	reg, ok := r.items[serverID]
	if !ok {
		return region.Blank, repositories.ErrRegionNotFound
	}
	return reg, nil
}

func (r *Repository) Put(_ context.Context, serverID string, reg region.Region) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.items[serverID] = reg
	return nil
}

func (r *Repository) PutIfAbsent(_ context.Context, serverID string, reg region.Region) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.items[serverID]; exists {
		return false, nil
	}
	r.items[serverID] = reg
	return true, nil
}

func (r *Repository) Remove(_ context.Context, serverID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.items, serverID)
	return nil
}

func (r *Repository) Count(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items), nil
}
