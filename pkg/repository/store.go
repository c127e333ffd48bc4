package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/pagination"
	"github.com/mwhitfield/placard/pkg/query"
)

// Schema describes how an entity type maps onto its table. Columns lists the
// writable columns in the order produced by Values; Returning lists every
// column in the order consumed by Scan. Identity and timestamp columns are
// database-generated and belong in Returning only.
type Schema[T any] struct {
	Projection  *query.ProjectionMap
	Columns     []string
	Returning   []string
	Values      func(T) []any
	ID          func(T) uuid.UUID
	Scan        ScanFunc[T]
	DefaultSort []query.SortField
}

// Store provides typed CRUD and offset pagination over a single entity type.
// Domain repositories compose a Store and add entity-specific operations.
type Store[T any] struct {
	db     *sql.DB
	schema Schema[T]
}

// NewStore creates a Store for the given schema.
func NewStore[T any](db *sql.DB, schema Schema[T]) *Store[T] {
	return &Store[T]{db: db, schema: schema}
}

// DB exposes the underlying connection pool for entity-specific queries.
func (s *Store[T]) DB() *sql.DB {
	return s.db
}

// Create persists a new row and returns the entity with its generated
// identity and timestamps populated.
func (s *Store[T]) Create(ctx context.Context, entity T) (T, error) {
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.schema.Projection.Table(),
		strings.Join(s.schema.Columns, ", "),
		placeholders(1, len(s.schema.Columns)),
		strings.Join(s.schema.Returning, ", "),
	)

	return WithTx(ctx, s.db, func(tx *sql.Tx) (T, error) {
		return QueryOne(ctx, tx, q, s.schema.Values(entity), s.schema.Scan)
	})
}

// Get returns the entity with the given identity, or nil when no row exists.
// Absence is not an error.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	q, args := s.Query().BuildSingle("ID", id)

	entity, err := QueryOne(ctx, s.db, q, args, s.schema.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetAll returns every row. Ordering follows the schema's default sort when
// one is configured; otherwise it is unspecified.
func (s *Store[T]) GetAll(ctx context.Context) ([]T, error) {
	q, args := s.Query().Build()
	return QueryMany(ctx, s.db, q, args, s.schema.Scan)
}

// Update overwrites every writable column of the stored row identified by the
// entity's ID and returns the updated entity. Returns nil when the identity
// does not exist. Callers wanting partial updates must load and mutate first.
func (s *Store[T]) Update(ctx context.Context, entity T) (*T, error) {
	assignments := make([]string, len(s.schema.Columns))
	for i, col := range s.schema.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}

	q := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		s.schema.Projection.Table(),
		strings.Join(assignments, ", "),
		len(s.schema.Columns)+1,
		strings.Join(s.schema.Returning, ", "),
	)

	args := append(s.schema.Values(entity), s.schema.ID(entity))

	updated, err := WithTx(ctx, s.db, func(tx *sql.Tx) (T, error) {
		return QueryOne(ctx, tx, q, args, s.schema.Scan)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes the row with the given identity and reports whether a row
// was removed.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.schema.Projection.Table())

	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Query returns an unfiltered builder over the entity's projection so callers
// can compose conditions before paginating.
func (s *Store[T]) Query() *query.Builder {
	return query.NewBuilder(s.schema.Projection, s.schema.DefaultSort...)
}

// Paginate counts the rows matched by qb, computes the page count with
// ceiling division, clamps the requested page to the last page when it
// overshoots a non-empty result, and returns the clamped page's items.
func (s *Store[T]) Paginate(
	ctx context.Context,
	qb *query.Builder,
	page, pageSize int,
) (pagination.PageResult[T], error) {
	var zero pagination.PageResult[T]

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return zero, fmt.Errorf("count %s: %w", s.schema.Projection.Table(), err)
	}

	page = pagination.ClampPage(page, pagination.TotalPages(total, pageSize))

	pageSQL, pageArgs := qb.BuildPage(page, pageSize)
	items, err := QueryMany(ctx, s.db, pageSQL, pageArgs, s.schema.Scan)
	if err != nil {
		return zero, fmt.Errorf("query %s: %w", s.schema.Projection.Table(), err)
	}

	return pagination.NewPageResult(items, total, page, pageSize), nil
}

func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
