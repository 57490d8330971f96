package repository

import (
	"context"
	"time"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

type MedicationRepository struct {
	db *database.DB
}

func NewMedicationRepository(db *database.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) Create(ctx context.Context, medication *models.Medication) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO medications (child_id, name, dosage, timestamp)
		 VALUES ($1, $2, $3, $4)
		 RETURNING medication_id`,
		medication.ChildID, medication.Name, medication.Dosage, medication.Timestamp,
	).Scan(&medication.MedicationID)
}

func (r *MedicationRepository) ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Medication, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT medication_id, child_id, name, dosage, timestamp
		 FROM medications
		 WHERE child_id = $1 AND timestamp >= $2 AND timestamp < $3
		 ORDER BY timestamp ASC`,
		childID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medications []*models.Medication
	for rows.Next() {
		medication := &models.Medication{}
		if err := rows.Scan(&medication.MedicationID, &medication.ChildID, &medication.Name,
			&medication.Dosage, &medication.Timestamp); err != nil {
			return nil, err
		}
		medications = append(medications, medication)
	}
	return medications, rows.Err()
}
