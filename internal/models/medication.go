package models

import "time"

// Medication is one recorded dose. Written either explicitly or by the
// dose hook when a medication-looking reminder is completed.
type Medication struct {
	MedicationID int       `json:"medication_id"`
	ChildID      int       `json:"child_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Timestamp    time.Time `json:"timestamp"`
}
