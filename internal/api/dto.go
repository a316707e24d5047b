package api

import (
	"encoding/json"
	"time"

	"github.com/mmynk/hospital-billing/internal/models"
)

type itemResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Strength    string    `json:"strength"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func fromItem(item *models.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Category:    item.Category,
		Name:        item.Name,
		Type:        item.Type,
		Strength:    item.Strength,
		Price:       item.Price,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func fromItems(items []*models.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = fromItem(item)
	}
	return out
}

type billResponse struct {
	ID          int64           `json:"id"`
	BillNumber  string          `json:"bill_number"`
	PatientName string          `json:"patient_name"`
	OPDNumber   string          `json:"opd_number"`
	TotalAmount float64         `json:"total_amount"`
	Items       json.RawMessage `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

func fromBills(bills []*models.Bill) []billResponse {
	out := make([]billResponse, len(bills))
	for i, b := range bills {
		out[i] = billResponse{
			ID:          b.ID,
			BillNumber:  b.BillNumber,
			PatientName: b.PatientName,
			OPDNumber:   b.OPDNumber,
			TotalAmount: b.TotalAmount,
			Items:       b.Items,
			CreatedAt:   b.CreatedAt.UTC(),
		}
	}
	return out
}

type statisticsResponse struct {
	ItemsByCategory map[string]int64 `json:"items_by_category"`
	TotalItems      int64            `json:"total_items"`
	TotalBills      int64            `json:"total_bills"`
	TotalRevenue    float64          `json:"total_revenue"`
}

type databaseStatus struct {
	Connected    bool   `json:"connected"`
	DatabaseType string `json:"database_type"`
	Fallback     bool   `json:"fallback"`
	Host         string `json:"host,omitempty"`
	Database     string `json:"database,omitempty"`
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}
