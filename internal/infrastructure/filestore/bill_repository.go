package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

type billRepository struct {
	store *Store
}

// CreateWithItems appends the bill to the in-memory collection and flushes
// the whole snapshot. The identity is generated before the write since the
// file has no store-assigned sequence. On a failed flush the appended bill
// is removed again, so readers never observe an unpersisted entry.
func (r *billRepository) CreateWithItems(ctx context.Context, bill *entity.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	for i := range bill.Items {
		if bill.Items[i].ID == uuid.Nil {
			bill.Items[i].ID = uuid.New()
		}
		bill.Items[i].BillID = bill.ID
		bill.Items[i].Position = i
	}

	r.store.doc.Bills = append(r.store.doc.Bills, cloneBill(*bill))
	if err := r.store.flushLocked(); err != nil {
		r.store.doc.Bills = r.store.doc.Bills[:len(r.store.doc.Bills)-1]
		return err
	}
	return nil
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.doc.Bills {
		if r.store.doc.Bills[i].ID == id {
			bill := cloneBill(r.store.doc.Bills[i])
			return &bill, nil
		}
	}
	return nil, nil
}

func (r *billRepository) ListAll(ctx context.Context) ([]entity.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bills := make([]entity.Bill, 0, len(r.store.doc.Bills))
	for i := range r.store.doc.Bills {
		bills = append(bills, cloneBill(r.store.doc.Bills[i]))
	}
	return bills, nil
}

func (r *billRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	bills, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].CreatedAt.After(bills[j].CreatedAt)
	})

	total := int64(len(bills))
	params.Validate()
	start := params.Offset()
	if start >= len(bills) {
		return []entity.Bill{}, total, nil
	}
	end := start + params.PerPage
	if end > len(bills) {
		end = len(bills)
	}
	return bills[start:end], total, nil
}

func (r *billRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.doc.Bills)), nil
}
