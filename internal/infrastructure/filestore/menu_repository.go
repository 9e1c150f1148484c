package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

type menuRepository struct {
	store *Store
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	r.store.doc.Menu = append(r.store.doc.Menu, *item)
	if err := r.store.flushLocked(); err != nil {
		r.store.doc.Menu = r.store.doc.Menu[:len(r.store.doc.Menu)-1]
		return err
	}
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.doc.Menu {
		if r.store.doc.Menu[i].ID == id {
			item := r.store.doc.Menu[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *menuRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.MenuItem, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]entity.MenuItem, len(r.store.doc.Menu))
	copy(items, r.store.doc.Menu)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	total := int64(len(items))
	params.Validate()
	start := params.Offset()
	if start >= len(items) {
		return []entity.MenuItem{}, total, nil
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.doc.Menu {
		if r.store.doc.Menu[i].ID == item.ID {
			prev := r.store.doc.Menu[i]
			item.CreatedAt = prev.CreatedAt
			item.UpdatedAt = time.Now().UTC()
			r.store.doc.Menu[i] = *item
			if err := r.store.flushLocked(); err != nil {
				r.store.doc.Menu[i] = prev
				return err
			}
			return nil
		}
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.doc.Menu {
		if r.store.doc.Menu[i].ID == id {
			prev := r.store.doc.Menu
			next := make([]entity.MenuItem, 0, len(prev)-1)
			next = append(next, prev[:i]...)
			next = append(next, prev[i+1:]...)
			r.store.doc.Menu = next
			if err := r.store.flushLocked(); err != nil {
				r.store.doc.Menu = prev
				return err
			}
			return nil
		}
	}
	return nil
}
