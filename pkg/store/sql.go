package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

// SQL keeps entities in a single table. Span columns mirror the entity dates
// so window queries run in the database; the body column is the entity JSON.
type SQL struct {
	conn *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	kind      TEXT    NOT NULL,
	id        TEXT    NOT NULL,
	span_type INTEGER NOT NULL,
	start_day TEXT,
	end_day   TEXT,
	on_day    TEXT,
	label     TEXT    NOT NULL,
	body      TEXT    NOT NULL,
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS entities_kind_start ON entities (kind, start_day);
CREATE INDEX IF NOT EXISTS entities_kind_on ON entities (kind, on_day);
`

// OpenSQL connects with driver ("sqlite" or "pgx") and applies the schema.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	if dsn == "" {
		return nil, errors.New("store: dsn required")
	}
	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one writer at a time avoids SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	}
	s := &SQL{conn: conn}
	if err := s.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *SQL) Close() error {
	return s.conn.Close()
}

// Ping checks the database is reachable.
func (s *SQL) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *SQL) List(ctx context.Context, kind plan.Kind) ([]plan.Entity, error) {
	if _, err := plan.New(kind); err != nil {
		return nil, err
	}
	q := s.conn.Rebind(`SELECT body FROM entities WHERE kind = ? ORDER BY id`)

	var bodies []string
	if err := s.conn.SelectContext(ctx, &bodies, q, string(kind)); err != nil {
		return nil, fmt.Errorf("store: list %s: %w", kind, err)
	}
	return decodeAll(kind, bodies)
}

// ListRange selects the entities active in w: undated ranges always, dated
// ranges by overlap with a missing bound left open, points inside w.
func (s *SQL) ListRange(ctx context.Context, kind plan.Kind, w calendar.Window) ([]plan.Entity, error) {
	if _, err := plan.New(kind); err != nil {
		return nil, err
	}
	q := s.conn.Rebind(`
		SELECT body FROM entities
		WHERE kind = ? AND (
			span_type = ?
			OR (span_type = ? AND (
				(start_day IS NULL AND end_day IS NULL)
				OR (start_day IS NOT NULL AND end_day IS NOT NULL AND start_day <= ? AND end_day >= ?)
				OR (start_day IS NOT NULL AND end_day IS NULL AND start_day <= ?)
				OR (start_day IS NULL AND end_day IS NOT NULL AND end_day >= ?)))
			OR (span_type = ? AND on_day IS NOT NULL AND on_day >= ? AND on_day <= ?)
		)
		ORDER BY id`)

	start, end := w.Start.String(), w.End.String()
	var bodies []string
	err := s.conn.SelectContext(ctx, &bodies, q,
		string(kind),
		int(plan.SpanAlways),
		int(plan.SpanRange), end, start, end, start,
		int(plan.SpanPoint), start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list %s in %s: %w", kind, w, err)
	}
	return decodeAll(kind, bodies)
}

func (s *SQL) Get(ctx context.Context, kind plan.Kind, id string) (plan.Entity, error) {
	q := s.conn.Rebind(`SELECT body FROM entities WHERE kind = ? AND id = ?`)

	var body string
	if err := s.conn.GetContext(ctx, &body, q, string(kind), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(kind, id)
		}
		return nil, fmt.Errorf("store: get %s %s: %w", kind, id, err)
	}
	return plan.Decode(kind, []byte(body))
}

func (s *SQL) Store(ctx context.Context, e plan.Entity) error {
	if e.Base().ID == "" {
		return errors.New("store: entity id required")
	}
	body, err := plan.Encode(e)
	if err != nil {
		return err
	}
	span := e.Span()

	q := s.conn.Rebind(`
		INSERT INTO entities (kind, id, span_type, start_day, end_day, on_day, label, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			span_type = excluded.span_type,
			start_day = excluded.start_day,
			end_day   = excluded.end_day,
			on_day    = excluded.on_day,
			label     = excluded.label,
			body      = excluded.body`)

	_, err = s.conn.ExecContext(ctx, q,
		string(e.Kind()), e.Base().ID, int(span.Type),
		nullDay(span.Start), nullDay(span.End), nullDay(span.On),
		e.Label(), string(body),
	)
	if err != nil {
		return fmt.Errorf("store: store %s %s: %w", e.Kind(), e.Base().ID, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, kind plan.Kind, id string) error {
	q := s.conn.Rebind(`DELETE FROM entities WHERE kind = ? AND id = ?`)

	res, err := s.conn.ExecContext(ctx, q, string(kind), id)
	if err != nil {
		return fmt.Errorf("store: delete %s %s: %w", kind, id, err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return notFound(kind, id)
	}
	return nil
}

func nullDay(d *calendar.Day) sql.NullString {
	if d == nil || d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decodeAll(kind plan.Kind, bodies []string) ([]plan.Entity, error) {
	out := make([]plan.Entity, 0, len(bodies))
	for _, body := range bodies {
		e, err := plan.Decode(kind, []byte(body))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	plan.Sort(out)
	return out, nil
}
