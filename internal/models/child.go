package models

import "time"

type Child struct {
	ChildID   int       `json:"child_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Gender    string    `json:"gender"`
}
