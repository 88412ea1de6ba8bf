package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/cosmic-api/internal/model"
)

// ScientistRepository persists scientists.
type ScientistRepository interface {
	List(ctx context.Context) ([]model.Scientist, error)
	Get(ctx context.Context, id int64) (model.Scientist, error)
	Create(ctx context.Context, name, fieldOfStudy string) (model.Scientist, error)
	Update(ctx context.Context, scientist model.Scientist) (model.Scientist, error)
	Delete(ctx context.Context, id int64) error
}

type scientistRepository struct {
	db DBTX
}

func (r *scientistRepository) List(ctx context.Context) ([]model.Scientist, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, field_of_study
		FROM scientists
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing scientists: %w", err)
	}

	scientists, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Scientist])
	if err != nil {
		return nil, fmt.Errorf("scanning scientists: %w", err)
	}
	return scientists, nil
}

func (r *scientistRepository) Get(ctx context.Context, id int64) (model.Scientist, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, field_of_study
		FROM scientists
		WHERE id = $1
	`, id)
	if err != nil {
		return model.Scientist{}, fmt.Errorf("getting scientist %d: %w", id, err)
	}

	scientist, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Scientist])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Scientist{}, fmt.Errorf("scientist %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Scientist{}, fmt.Errorf("scanning scientist %d: %w", id, err)
	}
	return scientist, nil
}

func (r *scientistRepository) Create(ctx context.Context, name, fieldOfStudy string) (model.Scientist, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO scientists (name, field_of_study)
		VALUES ($1, $2)
		RETURNING id, name, field_of_study
	`, name, fieldOfStudy)
	if err != nil {
		return model.Scientist{}, fmt.Errorf("inserting scientist: %w", err)
	}

	scientist, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Scientist])
	if err != nil {
		return model.Scientist{}, fmt.Errorf("inserting scientist: %w", err)
	}
	return scientist, nil
}

func (r *scientistRepository) Update(ctx context.Context, scientist model.Scientist) (model.Scientist, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE scientists
		SET name = $2, field_of_study = $3
		WHERE id = $1
		RETURNING id, name, field_of_study
	`, scientist.ID, scientist.Name, scientist.FieldOfStudy)
	if err != nil {
		return model.Scientist{}, fmt.Errorf("updating scientist %d: %w", scientist.ID, err)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Scientist])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Scientist{}, fmt.Errorf("scientist %d: %w", scientist.ID, ErrNotFound)
	}
	if err != nil {
		return model.Scientist{}, fmt.Errorf("updating scientist %d: %w", scientist.ID, err)
	}
	return updated, nil
}

// Delete removes the scientist; its missions go with it (ON DELETE CASCADE).
func (r *scientistRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM scientists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting scientist %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scientist %d: %w", id, ErrNotFound)
	}
	return nil
}
