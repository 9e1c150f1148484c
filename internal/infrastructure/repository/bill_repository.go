package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	domainRepo "github.com/davidkuria/resto-api/internal/domain/repository"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates the relational bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// CreateWithItems inserts the bill header and its items inside one
// transaction. A failed item insert rolls the header back, so a partial
// bill is never visible to readers.
func (r *billRepository) CreateWithItems(ctx context.Context, bill *entity.Bill) error {
	items := bill.Items
	for i := range items {
		items[i].Position = i
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(bill).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = bill.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) ListAll(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).Count(&total).Error
	return total, err
}
