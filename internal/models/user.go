package models

import "time"

// User is a caregiver registered with the bot. All active users receive
// every reminder notification; the household shares a single child profile.
type User struct {
	UserID    int64     `json:"user_id"` // Telegram ID
	UserName  string    `json:"user_name"`
	FirstName string    `json:"first_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
