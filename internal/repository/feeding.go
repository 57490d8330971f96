package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

type FeedingRepository struct {
	db *database.DB
}

func NewFeedingRepository(db *database.DB) *FeedingRepository {
	return &FeedingRepository{db: db}
}

func (r *FeedingRepository) Create(ctx context.Context, feeding *models.Feeding) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO feedings (child_id, amount, food_type, timestamp)
		 VALUES ($1, $2, $3, $4)
		 RETURNING feeding_id`,
		feeding.ChildID, feeding.Amount, feeding.FoodType, feeding.Timestamp,
	).Scan(&feeding.FeedingID)
}

// GetLast returns the most recent feeding, or nil when none is recorded yet.
func (r *FeedingRepository) GetLast(ctx context.Context) (*models.Feeding, error) {
	feeding := &models.Feeding{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT feeding_id, child_id, amount, food_type, timestamp
		 FROM feedings ORDER BY timestamp DESC LIMIT 1`,
	).Scan(&feeding.FeedingID, &feeding.ChildID, &feeding.Amount, &feeding.FoodType, &feeding.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return feeding, nil
}

func (r *FeedingRepository) ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Feeding, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT feeding_id, child_id, amount, food_type, timestamp
		 FROM feedings
		 WHERE child_id = $1 AND timestamp >= $2 AND timestamp < $3
		 ORDER BY timestamp ASC`,
		childID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedings []*models.Feeding
	for rows.Next() {
		feeding := &models.Feeding{}
		if err := rows.Scan(&feeding.FeedingID, &feeding.ChildID, &feeding.Amount,
			&feeding.FoodType, &feeding.Timestamp); err != nil {
			return nil, err
		}
		feedings = append(feedings, feeding)
	}
	return feedings, rows.Err()
}
