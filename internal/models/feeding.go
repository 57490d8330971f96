package models

import "time"

type Feeding struct {
	FeedingID int       `json:"feeding_id"`
	ChildID   int       `json:"child_id"`
	Amount    float64   `json:"amount"` // milliliters
	FoodType  string    `json:"food_type"`
	Timestamp time.Time `json:"timestamp"`
}
