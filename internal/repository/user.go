package repository

import (
	"context"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, userName, firstName string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (user_id, user_name, first_name) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET user_name = EXCLUDED.user_name, first_name = EXCLUDED.first_name
		 RETURNING user_id, user_name, first_name, is_active, created_at`,
		userID, userName, firstName,
	).Scan(&user.UserID, &user.UserName, &user.FirstName, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListActive returns every caregiver eligible for notifications. Reminders
// fan out to all of them; the household shares one child profile.
func (r *UserRepository) ListActive(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id, user_name, first_name, is_active, created_at
		 FROM users WHERE is_active = TRUE`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.UserID, &user.UserName, &user.FirstName, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET is_active = $1 WHERE user_id = $2`,
		active, userID,
	)
	return err
}
