package relational

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/mmynk/hospital-billing/internal/models"
)

// itemRecord is the gorm model for the items table.
type itemRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Category    string    `gorm:"size:100;not null;index:idx_items_category"`
	Name        string    `gorm:"size:255;not null"`
	Type        string    `gorm:"size:100"`
	Strength    string    `gorm:"size:100"`
	Price       float64   `gorm:"not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (itemRecord) TableName() string {
	return "items"
}

func (r *itemRecord) toModel() *models.Item {
	return &models.Item{
		ID:          r.ID,
		Category:    r.Category,
		Name:        r.Name,
		Type:        r.Type,
		Strength:    r.Strength,
		Price:       r.Price,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newItemRecord(item *models.Item) *itemRecord {
	return &itemRecord{
		Category:    item.Category,
		Name:        item.Name,
		Type:        item.Type,
		Strength:    item.Strength,
		Price:       item.Price,
		Description: item.Description,
	}
}

// applyPatch copies the set fields of patch onto the record.
func (r *itemRecord) applyPatch(patch models.ItemPatch) {
	item := r.toModel()
	patch.Apply(item)
	r.Category = item.Category
	r.Name = item.Name
	r.Type = item.Type
	r.Strength = item.Strength
	r.Price = item.Price
	r.Description = item.Description
}

// billRecord is the gorm model for the bills table.
// Line items are kept as an opaque JSON document.
type billRecord struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	BillNumber  string         `gorm:"size:100;not null;uniqueIndex:idx_bills_number"`
	PatientName string         `gorm:"size:255"`
	OPDNumber   string         `gorm:"column:opd_number;size:100"`
	TotalAmount float64        `gorm:"not null"`
	ItemsJSON   datatypes.JSON `gorm:"column:items_json;type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_bills_created_at"`
}

func (billRecord) TableName() string {
	return "bills"
}

func (r *billRecord) toModel() *models.Bill {
	items := json.RawMessage(r.ItemsJSON)
	if len(items) == 0 {
		items = json.RawMessage("[]")
	}
	return &models.Bill{
		ID:          r.ID,
		BillNumber:  r.BillNumber,
		PatientName: r.PatientName,
		OPDNumber:   r.OPDNumber,
		TotalAmount: r.TotalAmount,
		Items:       items,
		CreatedAt:   r.CreatedAt,
	}
}

func newBillRecord(bill *models.Bill) *billRecord {
	return &billRecord{
		BillNumber:  bill.BillNumber,
		PatientName: bill.PatientName,
		OPDNumber:   bill.OPDNumber,
		TotalAmount: bill.TotalAmount,
		ItemsJSON:   datatypes.JSON(bill.Items),
	}
}

// settingRecord is the gorm model for the settings key-value table.
type settingRecord struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (settingRecord) TableName() string {
	return "settings"
}
