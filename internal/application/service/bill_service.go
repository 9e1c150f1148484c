package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/internal/domain/repository"
	"github.com/davidkuria/resto-api/pkg/apperror"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// BillService handles bill creation, lookup and daily reporting. It holds no
// state between requests; every store call is bounded by the configured
// timeout.
type BillService struct {
	billRepo repository.BillRepository
	timeout  time.Duration
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, timeout time.Duration) *BillService {
	return &BillService{billRepo: billRepo, timeout: timeout}
}

// BillItemInput represents one line of a bill-creation request
type BillItemInput struct {
	Name     string
	Price    float64
	Quantity int
}

// CreateBillInput represents the bill-creation input
type CreateBillInput struct {
	CustomerMobile string
	Items          []BillItemInput
	Total          *float64
}

// CreateBill validates the input, resolves the total and persists the bill
// with its items as one atomic write. It returns the persisted bill; its ID
// is the invoice identity handed back to the caller.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	if err := validateCreateBill(input); err != nil {
		return nil, err
	}

	items := make([]entity.BillItem, 0, len(input.Items))
	var computed int64
	for _, in := range input.Items {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		item := entity.BillItem{
			Name:      strings.TrimSpace(in.Name),
			UnitPrice: toCents(in.Price),
			Quantity:  quantity,
		}
		computed += item.LineTotal()
		items = append(items, item)
	}

	// Client computes, server stores: a supplied total wins over the
	// recomputed one, but a mismatch is made observable.
	total := computed
	if input.Total != nil {
		total = toCents(*input.Total)
		if total != computed {
			slog.Warn("client-supplied total differs from computed total",
				"client_total", total, "computed_total", computed)
		}
	}

	bill := &entity.Bill{
		ID:             uuid.New(),
		CustomerMobile: input.CustomerMobile,
		Total:          total,
		Items:          items,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.billRepo.CreateWithItems(ctx, bill); err != nil {
		return nil, storeError("bill write", err,
			"invoice_id", bill.ID.String(), "items", len(items))
	}
	return bill, nil
}

// GetBill retrieves a bill with its items in write order. A malformed id is
// a not-found result, never an internal error.
func (s *BillService) GetBill(ctx context.Context, rawID string) (*entity.Bill, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, storeError("bill read", err, "invoice_id", rawID)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills returns a page of bills, newest first.
func (s *BillService) ListBills(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	params.Validate()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, storeError("bill list", err)
	}
	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// DailyReport is the answer to "what did we sell on day D": the matching
// bills and the sum of their totals.
type DailyReport struct {
	Bills      []entity.Bill `json:"bills"`
	TotalSales float64       `json:"total_sales"`
}

// Report scans all bills and keeps those whose creation timestamp falls on
// the given YYYY-MM-DD day; an empty date matches everything. Day matching
// is ISO-8601 prefix equality on the UTC timestamp, compared as text. Full
// scan, no index; fine at single-restaurant volumes.
func (s *BillService) Report(ctx context.Context, date string) (*DailyReport, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, apperror.NewBadRequestError("date must be in YYYY-MM-DD form")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bills, err := s.billRepo.ListAll(ctx)
	if err != nil {
		return nil, storeError("report scan", err, "date", date)
	}

	matched := make([]entity.Bill, 0, len(bills))
	var sum int64
	for _, bill := range bills {
		if date != "" && !strings.HasPrefix(bill.CreatedAt.UTC().Format(time.RFC3339), date) {
			continue
		}
		matched = append(matched, bill)
		sum += bill.Total
	}

	return &DailyReport{Bills: matched, TotalSales: float64(sum) / 100}, nil
}

func validateCreateBill(input *CreateBillInput) error {
	var fieldErrors []apperror.FieldError

	mobile := strings.TrimSpace(input.CustomerMobile)
	switch {
	case mobile == "":
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "customer_mobile", Message: "customer mobile number required",
		})
	case !mobilePattern.MatchString(mobile):
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "customer_mobile", Message: "customer mobile number must be exactly 10 digits",
		})
	}

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "items", Message: "items required",
		})
	}

	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].name", i), Message: "name required",
			})
		}
		if item.Price < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].price", i), Message: "price must be non-negative",
			})
		}
		if item.Quantity < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be positive",
			})
		}
	}

	if input.Total != nil && *input.Total < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "total", Message: "total must be non-negative",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// storeError maps persistence failures to the caller-facing taxonomy:
// deadline hits become timeouts, everything else a generic storage failure.
// Internal detail is logged here, never echoed to the caller.
func storeError(op string, err error, attrs ...any) error {
	if errors.Is(err, context.DeadlineExceeded) {
		slog.Error(op+" timed out", attrs...)
		return apperror.ErrTimeout
	}
	slog.Error(op+" failed", append(attrs, "error", err)...)
	return apperror.ErrStorage
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
