package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill represents one persisted invoice. A bill is an append-only ledger
// entry: once created it is never updated or deleted, and its items and
// total are immutable.
type Bill struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerMobile string    `gorm:"size:20;not null;index" json:"customer_mobile"`
	Total          int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(b),
		Total: float64(b.Total) / 100,
	})
}

// UnmarshalJSON mirrors MarshalJSON so the document store round-trips the
// same decimal layout it persists.
func (b *Bill) UnmarshalJSON(data []byte) error {
	type Alias Bill
	aux := &struct {
		*Alias
		Total float64 `json:"total"`
	}{Alias: (*Alias)(b)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	b.Total = int64(math.Round(aux.Total * 100))
	return nil
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// GetTotalDecimal returns the total as a decimal
func (b *Bill) GetTotalDecimal() float64 {
	return float64(b.Total) / 100
}

// BillItem represents one priced, quantified line inside a bill. The name
// and unit price are a snapshot of the menu at the time of sale.
type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity  int       `gorm:"not null" json:"quantity"`
	Position  int       `gorm:"not null" json:"-"` // retrieval order == write order
	CreatedAt time.Time `json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"price"`
	}{
		Alias:     Alias(bi),
		UnitPrice: float64(bi.UnitPrice) / 100,
	})
}

// UnmarshalJSON mirrors MarshalJSON for the document store.
func (bi *BillItem) UnmarshalJSON(data []byte) error {
	type Alias BillItem
	aux := &struct {
		*Alias
		UnitPrice float64 `json:"price"`
	}{Alias: (*Alias)(bi)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	bi.UnitPrice = int64(math.Round(aux.UnitPrice * 100))
	return nil
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// LineTotal returns unit price times quantity in cents.
func (bi *BillItem) LineTotal() int64 {
	return bi.UnitPrice * int64(bi.Quantity)
}
