// Package repositorytest provides an in-memory repository.Store for tests
// that need the service or HTTP layers without a database.
//
// The store mimics the PostgreSQL behavior the application relies on:
// ids are assigned in order, missions reference existing scientists and
// planets (violations surface as *pgconn.PgError with the real constraint
// names), deleting a scientist cascades to its missions, and a unit of work
// that fails or panics leaves no trace.
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository"
)

type state struct {
	scientists map[int64]model.Scientist
	planets    map[int64]model.Planet
	missions   map[int64]model.Mission
	nextID     map[string]int64
}

func newState() *state {
	return &state{
		scientists: map[int64]model.Scientist{},
		planets:    map[int64]model.Planet{},
		missions:   map[int64]model.Mission{},
		nextID:     map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.scientists {
		c.scientists[k] = v
	}
	for k, v := range s.planets {
		c.planets[k] = v
	}
	for k, v := range s.missions {
		c.missions[k] = v
	}
	for k, v := range s.nextID {
		c.nextID[k] = v
	}
	return c
}

func (s *state) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// Store is an in-memory repository.Store. The zero value is not usable;
// call NewStore.
type Store struct {
	mu    sync.Mutex
	state *state

	// Err, when set, is returned by every unit of work before it runs.
	Err error

	// Commits and Rollbacks count finished write transactions.
	Commits   int
	Rollbacks int
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Read(ctx context.Context, fn repository.TxFunc) error {
	return s.run(ctx, true, fn)
}

func (s *Store) Write(ctx context.Context, fn repository.TxFunc) error {
	return s.run(ctx, false, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn repository.TxFunc) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &tx{state: s.state.clone(), readOnly: readOnly}

	defer func() {
		if p := recover(); p != nil {
			s.Rollbacks++
			panic(p)
		}
		if err != nil {
			if !readOnly {
				s.Rollbacks++
			}
			return
		}
		if !readOnly {
			s.state = tx.state
			s.Commits++
		}
	}()

	return fn(&repository.Repositories{
		Scientists: &scientists{tx},
		Planets:    &planets{tx},
		Missions:   &missions{tx},
	})
}

// SeedScientist inserts a scientist outside any unit of work.
func (s *Store) SeedScientist(name, fieldOfStudy string) model.Scientist {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := model.Scientist{ID: s.state.id("scientists"), Name: name, FieldOfStudy: fieldOfStudy}
	s.state.scientists[sc.ID] = sc
	return sc
}

// SeedPlanet inserts a planet outside any unit of work.
func (s *Store) SeedPlanet(planet model.Planet) model.Planet {
	s.mu.Lock()
	defer s.mu.Unlock()
	planet.ID = s.state.id("planets")
	s.state.planets[planet.ID] = planet
	return planet
}

// SeedMission inserts a mission outside any unit of work without checking
// its references.
func (s *Store) SeedMission(name string, scientistID, planetID int64) model.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.Mission{ID: s.state.id("missions"), Name: name, ScientistID: scientistID, PlanetID: planetID}
	s.state.missions[m.ID] = m
	return m
}

// MissionCount reports the committed missions.
func (s *Store) MissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.missions)
}

type tx struct {
	state    *state
	readOnly bool
}

func (t *tx) checkWritable() error {
	if t.readOnly {
		return &pgconn.PgError{
			Code:     pgerrcode.ReadOnlySQLTransaction,
			Severity: "ERROR",
			Message:  "cannot execute statement in a read-only transaction",
		}
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type scientists struct{ *tx }

func (r *scientists) List(ctx context.Context) ([]model.Scientist, error) {
	var out []model.Scientist
	for _, id := range sortedKeys(r.state.scientists) {
		out = append(out, r.state.scientists[id])
	}
	return out, nil
}

func (r *scientists) Get(ctx context.Context, id int64) (model.Scientist, error) {
	sc, ok := r.state.scientists[id]
	if !ok {
		return model.Scientist{}, fmt.Errorf("scientist %d: %w", id, repository.ErrNotFound)
	}
	return sc, nil
}

func (r *scientists) Create(ctx context.Context, name, fieldOfStudy string) (model.Scientist, error) {
	if err := r.checkWritable(); err != nil {
		return model.Scientist{}, err
	}
	sc := model.Scientist{ID: r.state.id("scientists"), Name: name, FieldOfStudy: fieldOfStudy}
	r.state.scientists[sc.ID] = sc
	return sc, nil
}

func (r *scientists) Update(ctx context.Context, scientist model.Scientist) (model.Scientist, error) {
	if err := r.checkWritable(); err != nil {
		return model.Scientist{}, err
	}
	if _, ok := r.state.scientists[scientist.ID]; !ok {
		return model.Scientist{}, fmt.Errorf("scientist %d: %w", scientist.ID, repository.ErrNotFound)
	}
	r.state.scientists[scientist.ID] = scientist
	return scientist, nil
}

func (r *scientists) Delete(ctx context.Context, id int64) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.state.scientists[id]; !ok {
		return fmt.Errorf("scientist %d: %w", id, repository.ErrNotFound)
	}
	delete(r.state.scientists, id)
	for mid, m := range r.state.missions {
		if m.ScientistID == id {
			delete(r.state.missions, mid)
		}
	}
	return nil
}

type planets struct{ *tx }

func (r *planets) List(ctx context.Context) ([]model.Planet, error) {
	var out []model.Planet
	for _, id := range sortedKeys(r.state.planets) {
		out = append(out, r.state.planets[id])
	}
	return out, nil
}

func (r *planets) Get(ctx context.Context, id int64) (model.Planet, error) {
	p, ok := r.state.planets[id]
	if !ok {
		return model.Planet{}, fmt.Errorf("planet %d: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

func (r *planets) Create(ctx context.Context, planet model.Planet) (model.Planet, error) {
	if err := r.checkWritable(); err != nil {
		return model.Planet{}, err
	}
	planet.ID = r.state.id("planets")
	r.state.planets[planet.ID] = planet
	return planet, nil
}

type missions struct{ *tx }

func (r *missions) List(ctx context.Context) ([]model.Mission, error) {
	var out []model.Mission
	for _, id := range sortedKeys(r.state.missions) {
		out = append(out, r.state.missions[id])
	}
	return out, nil
}

func (r *missions) ListByScientist(ctx context.Context, scientistID int64) ([]model.MissionWithPlanet, error) {
	var out []model.MissionWithPlanet
	for _, id := range sortedKeys(r.state.missions) {
		m := r.state.missions[id]
		if m.ScientistID != scientistID {
			continue
		}
		out = append(out, model.MissionWithPlanet{Mission: m, Planet: r.state.planets[m.PlanetID]})
	}
	return out, nil
}

func (r *missions) Create(ctx context.Context, name string, scientistID, planetID int64) (model.Mission, error) {
	if err := r.checkWritable(); err != nil {
		return model.Mission{}, err
	}
	if _, ok := r.state.scientists[scientistID]; !ok {
		return model.Mission{}, fmt.Errorf("inserting mission: %w", foreignKeyViolation("scientist_id", "scientists", scientistID))
	}
	if _, ok := r.state.planets[planetID]; !ok {
		return model.Mission{}, fmt.Errorf("inserting mission: %w", foreignKeyViolation("planet_id", "planets", planetID))
	}

	m := model.Mission{ID: r.state.id("missions"), Name: name, ScientistID: scientistID, PlanetID: planetID}
	r.state.missions[m.ID] = m
	return m, nil
}

// foreignKeyViolation builds the error PostgreSQL reports for an insert
// into missions that references a missing row.
func foreignKeyViolation(column, referenced string, id int64) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.ForeignKeyViolation,
		Message:        fmt.Sprintf(`insert or update on table "missions" violates foreign key constraint "missions_%s_fkey"`, column),
		Detail:         fmt.Sprintf(`Key (%s)=(%d) is not present in table "%s".`, column, id, referenced),
		SchemaName:     "public",
		TableName:      "missions",
		ConstraintName: "missions_" + column + "_fkey",
	}
}
