package models

import "time"

type Weight struct {
	WeightID  int       `json:"weight_id"`
	ChildID   int       `json:"child_id"`
	Weight    float64   `json:"weight"` // kilograms
	Timestamp time.Time `json:"timestamp"`
}
