package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/cosmic-api/internal/model"
)

// PlanetRepository persists planets. Planets are only created by seeding.
type PlanetRepository interface {
	List(ctx context.Context) ([]model.Planet, error)
	Get(ctx context.Context, id int64) (model.Planet, error)
	Create(ctx context.Context, planet model.Planet) (model.Planet, error)
}

type planetRepository struct {
	db DBTX
}

func (r *planetRepository) List(ctx context.Context) ([]model.Planet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, distance_from_earth, nearest_star
		FROM planets
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing planets: %w", err)
	}

	planets, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Planet])
	if err != nil {
		return nil, fmt.Errorf("scanning planets: %w", err)
	}
	return planets, nil
}

func (r *planetRepository) Get(ctx context.Context, id int64) (model.Planet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, distance_from_earth, nearest_star
		FROM planets
		WHERE id = $1
	`, id)
	if err != nil {
		return model.Planet{}, fmt.Errorf("getting planet %d: %w", id, err)
	}

	planet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Planet])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Planet{}, fmt.Errorf("planet %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Planet{}, fmt.Errorf("scanning planet %d: %w", id, err)
	}
	return planet, nil
}

func (r *planetRepository) Create(ctx context.Context, planet model.Planet) (model.Planet, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO planets (name, distance_from_earth, nearest_star)
		VALUES ($1, $2, $3)
		RETURNING id, name, distance_from_earth, nearest_star
	`, planet.Name, planet.DistanceFromEarth, planet.NearestStar)
	if err != nil {
		return model.Planet{}, fmt.Errorf("inserting planet: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Planet])
	if err != nil {
		return model.Planet{}, fmt.Errorf("inserting planet: %w", err)
	}
	return created, nil
}
