package relational

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// sampleItems is the starter catalog inserted into an empty database.
var sampleItems = []itemRecord{
	{Category: "Registration", Name: "Registration Fee", Type: "Standard", Price: 50, Description: "Patient registration fee"},
	{Category: "Dr. Fee", Name: "Doctor Consultation Fee", Type: "Consultation", Price: 300, Description: "General consultation fee"},
	{Category: "Dr. Fee", Name: "Specialist Consultation", Type: "Specialist", Price: 500, Description: "Specialist doctor consultation"},
	{Category: "Lab", Name: "CBC", Type: "Blood Test", Price: 250, Description: "Complete Blood Count"},
	{Category: "Lab", Name: "Blood Sugar", Type: "Blood Test", Price: 150, Description: "Blood glucose test"},
	{Category: "Lab", Name: "Urine R/E", Type: "Urine Test", Price: 100, Description: "Urine routine examination"},
	{Category: "Medicine", Name: "Paracetamol", Type: "Tablet", Strength: "500mg", Price: 2, Description: "Pain reliever and fever reducer"},
	{Category: "Medicine", Name: "Amoxicillin", Type: "Capsule", Strength: "250mg", Price: 8, Description: "Antibiotic"},
	{Category: "X-ray", Name: "Chest X-ray", Type: "Digital X-ray", Strength: "PA View", Price: 500, Description: "Chest X-ray PA view"},
	{Category: "X-ray", Name: "Hand X-ray", Type: "Digital X-ray", Strength: "AP/LAT", Price: 400, Description: "Hand X-ray both views"},
	{Category: "OR", Name: "Minor Surgery", Type: "Surgical Procedure", Price: 2000, Description: "Minor surgical procedure"},
	{Category: "OR", Name: "Major Surgery", Type: "Surgical Procedure", Price: 5000, Description: "Major surgical procedure"},
	{Category: "O2, ISO", Name: "O2 Service", Type: "Oxygen Therapy", Strength: "Per L/hr", Price: 65, Description: "Oxygen therapy per liter per hour"},
	{Category: "O2, ISO", Name: "ISO Service", Type: "Isoflurane Therapy", Strength: "Per minute", Price: 30, Description: "Isoflurane therapy per minute"},
}

// seedSampleData fills the catalog with sampleItems when it has no items.
// A populated catalog is never touched.
func seedSampleData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&itemRecord{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		if count > 0 {
			return nil
		}

		// Copy so the package-level slice never receives generated IDs.
		records := make([]itemRecord, len(sampleItems))
		copy(records, sampleItems)
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to insert sample items: %w", err)
		}

		slog.Info("Seeded sample catalog", "items", len(records))
		return nil
	})
}
