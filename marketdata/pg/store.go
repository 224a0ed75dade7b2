// Package pg loads calibrated zero-curve nodes from Postgres.
//
// Schema:
//
//	curves      (name text, as_of date, day_count text, primary key (name, as_of))
//	curve_nodes (curve_name text, as_of date, x double precision, y double precision)
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/quantfn/rateslib/curve"
	"github.com/quantfn/rateslib/daycount"
)

// ErrCurveNotFound is returned when no curve exists for the requested name
// and as-of date.
var ErrCurveNotFound = errors.New("curve not found")

// Store loads curve nodes from a Postgres database.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres with the given DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCurve reads the zero curve named name as of asOf and returns it as a
// validated nodal curve tagged with year-fraction x values and zero-rate
// y values.
func (s *Store) LoadCurve(ctx context.Context, name string, asOf time.Time) (*curve.InterpolatedNodalCurve, error) {
	var dayCountName string
	err := s.db.QueryRowContext(ctx,
		`SELECT day_count FROM curves WHERE name = $1 AND as_of = $2`,
		name, asOf).Scan(&dayCountName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load curve %q as of %s: %w", name, asOf.Format("2006-01-02"), ErrCurveNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load curve %q: %w", name, err)
	}

	dc, err := daycount.Of(dayCountName)
	if err != nil {
		return nil, fmt.Errorf("load curve %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT x, y FROM curve_nodes WHERE curve_name = $1 AND as_of = $2 ORDER BY x`,
		name, asOf)
	if err != nil {
		return nil, fmt.Errorf("load curve %q nodes: %w", name, err)
	}
	defer rows.Close()

	var xs, ys []float64
	for rows.Next() {
		var x, y float64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("load curve %q nodes: %w", name, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load curve %q nodes: %w", name, err)
	}

	meta := curve.Metadata{
		Name:       name,
		XValueType: curve.YearFraction,
		YValueType: curve.ZeroRate,
		DayCount:   dc,
	}
	return curve.NewInterpolatedNodalCurve(meta, xs, ys)
}
