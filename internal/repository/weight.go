package repository

import (
	"context"
	"time"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

type WeightRepository struct {
	db *database.DB
}

func NewWeightRepository(db *database.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

func (r *WeightRepository) Create(ctx context.Context, weight *models.Weight) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO weights (child_id, weight, timestamp)
		 VALUES ($1, $2, $3)
		 RETURNING weight_id`,
		weight.ChildID, weight.Weight, weight.Timestamp,
	).Scan(&weight.WeightID)
}

func (r *WeightRepository) ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Weight, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT weight_id, child_id, weight, timestamp
		 FROM weights
		 WHERE child_id = $1 AND timestamp >= $2 AND timestamp < $3
		 ORDER BY timestamp ASC`,
		childID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weights []*models.Weight
	for rows.Next() {
		weight := &models.Weight{}
		if err := rows.Scan(&weight.WeightID, &weight.ChildID, &weight.Weight, &weight.Timestamp); err != nil {
			return nil, err
		}
		weights = append(weights, weight)
	}
	return weights, rows.Err()
}
