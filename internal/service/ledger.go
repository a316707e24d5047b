package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

const (
	// DefaultBillLimit is used when no usable limit is supplied.
	DefaultBillLimit = 50
	// MaxBillLimit caps how many bills a single listing returns.
	MaxBillLimit = 1000
)

// BillInput is the decoded body of a save-bill request.
type BillInput struct {
	BillNumber  *string         `json:"bill_number"`
	PatientName *string         `json:"patient_name"`
	OPDNumber   *string         `json:"opd_number"`
	TotalAmount any             `json:"total_amount"`
	Items       json.RawMessage `json:"items"`
}

// LedgerService records finalized bills.
type LedgerService struct {
	store storage.BillStore
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.BillStore) *LedgerService {
	return &LedgerService{store: store}
}

// Save validates and stores a bill, returning its ID. A bill number that is
// already taken yields storage.ErrConflict.
func (s *LedgerService) Save(ctx context.Context, in BillInput) (int64, error) {
	billNumber, err := requireText("bill_number", in.BillNumber)
	if err != nil {
		return 0, err
	}
	total, err := coerceAmount("total_amount", in.TotalAmount)
	if err != nil {
		return 0, err
	}
	items, err := requireArray("items", in.Items)
	if err != nil {
		return 0, err
	}

	bill := &models.Bill{
		BillNumber:  billNumber,
		PatientName: optionalText(in.PatientName),
		OPDNumber:   optionalText(in.OPDNumber),
		TotalAmount: total,
		Items:       items,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			slog.Warn("SaveBill rejected duplicate bill number", "bill_number", billNumber)
		} else {
			slog.Error("SaveBill failed", "bill_number", billNumber, "error", err)
		}
		return 0, err
	}

	slog.Info("Bill saved", "bill_id", bill.ID, "bill_number", bill.BillNumber, "total_amount", bill.TotalAmount)
	return bill.ID, nil
}

// ListRecent returns up to limit bills, newest first. The limit is clamped
// to [1, MaxBillLimit].
func (s *LedgerService) ListRecent(ctx context.Context, limit int) ([]*models.Bill, error) {
	limit = ClampLimit(limit)
	bills, err := s.store.ListRecentBills(ctx, limit)
	if err != nil {
		slog.Error("ListRecentBills failed", "limit", limit, "error", err)
		return nil, err
	}
	return bills, nil
}

// ParseLimit reads a limit query parameter. Missing or non-numeric values
// mean DefaultBillLimit; numeric values are clamped.
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBillLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultBillLimit
	}
	return ClampLimit(n)
}

// ClampLimit bounds n to [1, MaxBillLimit].
func ClampLimit(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxBillLimit:
		return MaxBillLimit
	default:
		return n
	}
}
