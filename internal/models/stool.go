package models

import "time"

type Stool struct {
	StoolID     int       `json:"stool_id"`
	ChildID     int       `json:"child_id"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Timestamp   time.Time `json:"timestamp"`
}
