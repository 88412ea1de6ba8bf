package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/cosmic-api/internal/model"
)

// MissionRepository persists missions.
type MissionRepository interface {
	List(ctx context.Context) ([]model.Mission, error)
	ListByScientist(ctx context.Context, scientistID int64) ([]model.MissionWithPlanet, error)
	// Create inserts a mission. A missing scientist or planet surfaces as
	// the foreign key violation reported by the database.
	Create(ctx context.Context, name string, scientistID, planetID int64) (model.Mission, error)
}

type missionRepository struct {
	db DBTX
}

func (r *missionRepository) List(ctx context.Context) ([]model.Mission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, scientist_id, planet_id
		FROM missions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing missions: %w", err)
	}

	missions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Mission])
	if err != nil {
		return nil, fmt.Errorf("scanning missions: %w", err)
	}
	return missions, nil
}

func (r *missionRepository) ListByScientist(ctx context.Context, scientistID int64) ([]model.MissionWithPlanet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.name, m.scientist_id, m.planet_id,
		       p.id, p.name, p.distance_from_earth, p.nearest_star
		FROM missions m
		JOIN planets p ON p.id = m.planet_id
		WHERE m.scientist_id = $1
		ORDER BY m.id
	`, scientistID)
	if err != nil {
		return nil, fmt.Errorf("listing missions of scientist %d: %w", scientistID, err)
	}

	missions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MissionWithPlanet, error) {
		var m model.MissionWithPlanet
		err := row.Scan(
			&m.ID, &m.Name, &m.ScientistID, &m.PlanetID,
			&m.Planet.ID, &m.Planet.Name, &m.Planet.DistanceFromEarth, &m.Planet.NearestStar,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning missions of scientist %d: %w", scientistID, err)
	}
	return missions, nil
}

func (r *missionRepository) Create(ctx context.Context, name string, scientistID, planetID int64) (model.Mission, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO missions (name, scientist_id, planet_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, scientist_id, planet_id
	`, name, scientistID, planetID)
	if err != nil {
		return model.Mission{}, fmt.Errorf("inserting mission: %w", err)
	}

	mission, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Mission])
	if err != nil {
		return model.Mission{}, fmt.Errorf("inserting mission: %w", err)
	}
	return mission, nil
}
