package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// MenuRepository defines the interface for menu catalog operations
type MenuRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.MenuItem, int64, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
