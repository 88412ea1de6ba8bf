package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/cosmic-api/internal/model"
)

// SeedResult counts the rows Seed inserted.
type SeedResult struct {
	Planets    int
	Scientists int
}

func ptr[T any](v T) *T { return &v }

// SamplePlanets are the planets inserted by Seed.
var SamplePlanets = []model.Planet{
	{Name: "TauCeti F", DistanceFromEarth: ptr(int64(1187)), NearestStar: ptr("TauCeti")},
	{Name: "Maxxor", DistanceFromEarth: ptr(int64(9210)), NearestStar: ptr("Canus Maximus")},
	{Name: "Kepler-186f", DistanceFromEarth: ptr(int64(582)), NearestStar: ptr("Kepler-186")},
	{Name: "Proxima b", DistanceFromEarth: ptr(int64(4)), NearestStar: ptr("Proxima Centauri")},
	{Name: "Rogue Planet X", DistanceFromEarth: nil, NearestStar: nil},
}

// SampleScientists are the scientists inserted by Seed.
var SampleScientists = []model.Scientist{
	{Name: "Mel T. Valent", FieldOfStudy: "xenobiology"},
	{Name: "P. Legrange", FieldOfStudy: "Orbital Mechanics"},
	{Name: "Vera Rubin", FieldOfStudy: "Astronomy"},
}

// Seed inserts the sample planets and scientists in one transaction. Each
// table is only seeded while it is empty, so running it twice is harmless.
func Seed(ctx context.Context, store Store) (SeedResult, error) {
	var result SeedResult

	err := store.Write(ctx, func(repos *Repositories) error {
		planets, err := repos.Planets.List(ctx)
		if err != nil {
			return err
		}
		if len(planets) == 0 {
			for _, planet := range SamplePlanets {
				if _, err := repos.Planets.Create(ctx, planet); err != nil {
					return fmt.Errorf("seeding planet %q: %w", planet.Name, err)
				}
				result.Planets++
			}
		}

		scientists, err := repos.Scientists.List(ctx)
		if err != nil {
			return err
		}
		if len(scientists) == 0 {
			for _, scientist := range SampleScientists {
				if _, err := repos.Scientists.Create(ctx, scientist.Name, scientist.FieldOfStudy); err != nil {
					return fmt.Errorf("seeding scientist %q: %w", scientist.Name, err)
				}
				result.Scientists++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return result, nil
}
