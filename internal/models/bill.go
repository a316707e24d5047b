package models

import (
	"encoding/json"
	"time"
)

// Bill is a saved bill. Bills are written once and never modified.
type Bill struct {
	// ID is assigned by the store on insert.
	ID int64

	// BillNumber is the human-facing identifier printed on the bill
	// (e.g. "IP-2025-123456"). Unique across all bills.
	BillNumber string

	PatientName string

	// OPDNumber is the outpatient department registration number, if any.
	OPDNumber string

	// TotalAmount is the amount charged, as computed by the billing client.
	TotalAmount float64

	// Items is the JSON array of line-item snapshots exactly as submitted.
	Items json.RawMessage

	CreatedAt time.Time
}
