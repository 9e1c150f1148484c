package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem represents a catalog entry the restaurant sells. Bills reference
// menu items by name/price snapshot, never by id, so editing or deleting a
// menu item leaves historical bills untouched.
type MenuItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null;index" json:"name"`
	Price     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ImagePath string         `gorm:"size:512" json:"image_path,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(m),
		Price: float64(m.Price) / 100,
	})
}

// UnmarshalJSON mirrors MarshalJSON so the document store round-trips the
// same decimal layout it persists.
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	type Alias MenuItem
	aux := &struct {
		*Alias
		Price float64 `json:"price"`
	}{Alias: (*Alias)(m)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	m.Price = int64(math.Round(aux.Price * 100))
	return nil
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// GetPriceDecimal returns the price as a decimal
func (m *MenuItem) GetPriceDecimal() float64 {
	return float64(m.Price) / 100
}
