package repository

import (
	"context"
	"time"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

type StoolRepository struct {
	db *database.DB
}

func NewStoolRepository(db *database.DB) *StoolRepository {
	return &StoolRepository{db: db}
}

func (r *StoolRepository) Create(ctx context.Context, stool *models.Stool) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO stools (child_id, description, color, timestamp)
		 VALUES ($1, $2, $3, $4)
		 RETURNING stool_id`,
		stool.ChildID, stool.Description, stool.Color, stool.Timestamp,
	).Scan(&stool.StoolID)
}

func (r *StoolRepository) ListBetween(ctx context.Context, childID int, from, to time.Time) ([]*models.Stool, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT stool_id, child_id, description, color, timestamp
		 FROM stools
		 WHERE child_id = $1 AND timestamp >= $2 AND timestamp < $3
		 ORDER BY timestamp ASC`,
		childID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stools []*models.Stool
	for rows.Next() {
		stool := &models.Stool{}
		if err := rows.Scan(&stool.StoolID, &stool.ChildID, &stool.Description, &stool.Color, &stool.Timestamp); err != nil {
			return nil, err
		}
		stools = append(stools, stool)
	}
	return stools, rows.Err()
}
