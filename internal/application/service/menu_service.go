package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/domain/entity"
	"github.com/davidkuria/resto-api/internal/domain/repository"
	"github.com/davidkuria/resto-api/pkg/apperror"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// MenuService handles menu catalog operations. Menu changes never touch
// persisted bills: bills carry name/price snapshots, not references.
type MenuService struct {
	menuRepo repository.MenuRepository
	timeout  time.Duration
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository, timeout time.Duration) *MenuService {
	return &MenuService{menuRepo: menuRepo, timeout: timeout}
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	Name  string
	Price float64
}

// UpdateMenuItemInput represents the update menu item input
type UpdateMenuItemInput struct {
	Name  *string
	Price *float64
}

func (s *MenuService) Create(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	if err := validateMenuItem(input.Name, input.Price); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(input.Name),
		Price: toCents(input.Price),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, storeError("menu write", err, "item", item.Name)
	}
	return item, nil
}

func (s *MenuService) Get(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("menu read", err, "id", id.String())
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

func (s *MenuService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.MenuItem], error) {
	params.Validate()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, total, err := s.menuRepo.List(ctx, params)
	if err != nil {
		return nil, storeError("menu list", err)
	}
	return pagination.NewPaginatedResult(items, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *MenuService) Update(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "name", Message: "name required"},
			})
		}
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "price", Message: "price must be positive"},
			})
		}
		item.Price = toCents(*input.Price)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, storeError("menu update", err, "id", id.String())
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return storeError("menu delete", err, "id", id.String())
	}
	return nil
}

// SetImage records the path of an uploaded item image.
func (s *MenuService) SetImage(ctx context.Context, id uuid.UUID, path string) (*entity.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.ImagePath = path

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, storeError("menu image update", err, "id", id.String())
	}
	return item, nil
}

func validateMenuItem(name string, price float64) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name required"})
	}
	if price <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "price must be positive"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
