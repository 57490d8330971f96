package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/carebot/internal/database"
	"github.com/example/carebot/internal/models"
)

var ErrNoChild = errors.New("no child profile registered")

type ChildRepository struct {
	db *database.DB
}

func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO children (name, birth_date, gender) VALUES ($1, $2, $3)
		 RETURNING child_id`,
		child.Name, child.BirthDate, child.Gender,
	).Scan(&child.ChildID)
}

func (r *ChildRepository) GetByID(ctx context.Context, childID int) (*models.Child, error) {
	child := &models.Child{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT child_id, name, birth_date, gender FROM children WHERE child_id = $1`,
		childID,
	).Scan(&child.ChildID, &child.Name, &child.BirthDate, &child.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoChild
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

// GetFirst returns the household's child profile. The deployment models a
// single-subject household, so the first row is the profile.
func (r *ChildRepository) GetFirst(ctx context.Context) (*models.Child, error) {
	child := &models.Child{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT child_id, name, birth_date, gender FROM children ORDER BY child_id ASC LIMIT 1`,
	).Scan(&child.ChildID, &child.Name, &child.BirthDate, &child.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoChild
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}
