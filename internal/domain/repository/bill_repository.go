package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations. Both the
// relational store and the document-file store satisfy it; the billing
// service is written against this contract only.
type BillRepository interface {
	// CreateWithItems persists the bill header and every line item as one
	// durable unit: either all of them become visible to subsequent reads or
	// none do. Items are persisted in the order supplied.
	CreateWithItems(ctx context.Context, bill *entity.Bill) error

	// GetWithItems returns the bill with its items in write order, or
	// (nil, nil) when no bill with that id exists.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)

	// ListAll returns every persisted bill with items. Full scan, no index.
	ListAll(ctx context.Context) ([]entity.Bill, error)

	// List returns a page of bills ordered by creation time descending.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error)

	// Count returns the number of persisted bills.
	Count(ctx context.Context) (int64, error)
}
