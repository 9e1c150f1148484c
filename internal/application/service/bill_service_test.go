package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/pkg/apperror"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// fakeBillRepo is an in-memory BillRepository for service tests.
type fakeBillRepo struct {
	mu    sync.Mutex
	bills []entity.Bill
	err   error
	block bool // when set, CreateWithItems waits for ctx cancellation
}

func (f *fakeBillRepo) CreateWithItems(ctx context.Context, bill *entity.Bill) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.err != nil {
		return f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
		bill.Items[i].Position = i
	}
	stored := *bill
	stored.Items = append([]entity.BillItem(nil), bill.Items...)
	f.bills = append(f.bills, stored)
	return nil
}

func (f *fakeBillRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.bills {
		if f.bills[i].ID == id {
			bill := f.bills[i]
			bill.Items = append([]entity.BillItem(nil), f.bills[i].Items...)
			return &bill, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepo) ListAll(ctx context.Context) ([]entity.Bill, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Bill(nil), f.bills...), nil
}

func (f *fakeBillRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	bills, err := f.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return bills, int64(len(bills)), nil
}

func (f *fakeBillRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bills)), nil
}

func validInput() *CreateBillInput {
	return &CreateBillInput{
		CustomerMobile: "0712345678",
		Items: []BillItemInput{
			{Name: "Masala Dosa", Price: 2.50, Quantity: 2},
			{Name: "Filter Coffee", Price: 1.25},
		},
	}
}

func TestBillService_CreateBill_RoundTrip(t *testing.T) {
	repo := &fakeBillRepo{}
	svc := NewBillService(repo, time.Second)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, validInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, bill.ID)

	got, err := svc.GetBill(ctx, bill.ID.String())
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Masala Dosa", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "Filter Coffee", got.Items[1].Name)
	// Absent quantity defaults to 1.
	assert.Equal(t, 1, got.Items[1].Quantity)
	// 2 x 2.50 + 1 x 1.25
	assert.Equal(t, 6.25, got.GetTotalDecimal())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestBillService_CreateBill_ClientTotalWins(t *testing.T) {
	repo := &fakeBillRepo{}
	svc := NewBillService(repo, time.Second)

	input := validInput()
	clientTotal := 10.00
	input.Total = &clientTotal

	bill, err := svc.CreateBill(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bill.Total)
}

func TestBillService_CreateBill_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *CreateBillInput
	}{
		{
			name: "missing customer mobile",
			input: &CreateBillInput{
				Items: []BillItemInput{{Name: "Idli", Price: 1}},
			},
		},
		{
			name: "non-numeric customer mobile",
			input: &CreateBillInput{
				CustomerMobile: "07123abc78",
				Items:          []BillItemInput{{Name: "Idli", Price: 1}},
			},
		},
		{
			name: "wrong length customer mobile",
			input: &CreateBillInput{
				CustomerMobile: "12345",
				Items:          []BillItemInput{{Name: "Idli", Price: 1}},
			},
		},
		{
			name:  "empty items",
			input: &CreateBillInput{CustomerMobile: "0712345678"},
		},
		{
			name: "item without name",
			input: &CreateBillInput{
				CustomerMobile: "0712345678",
				Items:          []BillItemInput{{Name: "  ", Price: 1}},
			},
		},
		{
			name: "negative price",
			input: &CreateBillInput{
				CustomerMobile: "0712345678",
				Items:          []BillItemInput{{Name: "Idli", Price: -1}},
			},
		},
		{
			name: "negative quantity",
			input: &CreateBillInput{
				CustomerMobile: "0712345678",
				Items:          []BillItemInput{{Name: "Idli", Price: 1, Quantity: -2}},
			},
		},
		{
			name: "negative total",
			input: func() *CreateBillInput {
				in := validInput()
				total := -1.0
				in.Total = &total
				return in
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBillRepo{}
			svc := NewBillService(repo, time.Second)

			_, err := svc.CreateBill(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err), "expected validation error, got %v", err)

			// Rejected input must not reach the store.
			count, _ := repo.Count(context.Background())
			assert.Equal(t, int64(0), count)
		})
	}
}

func TestBillService_GetBill_NotFound(t *testing.T) {
	svc := NewBillService(&fakeBillRepo{}, time.Second)
	ctx := context.Background()

	_, err := svc.GetBill(ctx, uuid.New().String())
	assert.True(t, apperror.IsNotFound(err))

	// A malformed id is a not-found result, not an internal error.
	_, err = svc.GetBill(ctx, "not-an-invoice-id")
	assert.True(t, apperror.IsNotFound(err))
}

func TestBillService_GetBill_ReadIsIdempotent(t *testing.T) {
	repo := &fakeBillRepo{}
	svc := NewBillService(repo, time.Second)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, validInput())
	require.NoError(t, err)

	first, err := svc.GetBill(ctx, bill.ID.String())
	require.NoError(t, err)
	second, err := svc.GetBill(ctx, bill.ID.String())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBillService_CreateBill_Timeout(t *testing.T) {
	repo := &fakeBillRepo{block: true}
	svc := NewBillService(repo, 10*time.Millisecond)

	_, err := svc.CreateBill(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, apperror.ErrTimeout, err)
}

func TestBillService_CreateBill_StorageError(t *testing.T) {
	repo := &fakeBillRepo{err: assert.AnError}
	svc := NewBillService(repo, time.Second)

	_, err := svc.CreateBill(context.Background(), validInput())
	require.Error(t, err)
	// Internal detail is not echoed to the caller.
	assert.Equal(t, apperror.ErrStorage, err)
}

func TestBillService_Report(t *testing.T) {
	repo := &fakeBillRepo{}
	svc := NewBillService(repo, time.Second)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 10, 12, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 11, 9, 15, 0, 0, time.UTC)
	repo.bills = []entity.Bill{
		{ID: uuid.New(), CustomerMobile: "0712345678", Total: 500, CreatedAt: day1},
		{ID: uuid.New(), CustomerMobile: "0798765432", Total: 750, CreatedAt: day1},
		{ID: uuid.New(), CustomerMobile: "0711111111", Total: 300, CreatedAt: day2},
	}

	report, err := svc.Report(ctx, "2026-01-10")
	require.NoError(t, err)
	require.Len(t, report.Bills, 2)
	assert.Equal(t, 12.50, report.TotalSales)

	// No date returns every bill with the overall sum.
	report, err = svc.Report(ctx, "")
	require.NoError(t, err)
	assert.Len(t, report.Bills, 3)
	assert.Equal(t, 15.50, report.TotalSales)

	// A day with no sales is an empty report, not an error.
	report, err = svc.Report(ctx, "2026-01-12")
	require.NoError(t, err)
	assert.Empty(t, report.Bills)
	assert.Equal(t, 0.0, report.TotalSales)

	_, err = svc.Report(ctx, "10-01-2026")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
