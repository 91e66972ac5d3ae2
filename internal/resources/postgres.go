package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store over the resources table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store. The schema must already be migrated.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, url FROM resources ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Resource, error) {
		var r Resource
		err := row.Scan(&r.ID, &r.Title, &r.URL)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan resources: %w", err)
	}
	return list, nil
}

func (s *PostgresStore) Add(ctx context.Context, r Resource) (Resource, error) {
	r, err := newResource(r)
	if err != nil {
		return Resource{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resources (id, title, url, position)
		 VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), -1) + 1 FROM resources))`,
		r.ID, r.Title, r.URL,
	)
	if err != nil {
		return Resource{}, fmt.Errorf("insert resource: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *PostgresStore) Replace(ctx context.Context, list []Resource) error {
	if err := checkReplace(list); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM resources`); err != nil {
		return fmt.Errorf("clear resources: %w", err)
	}

	if len(list) > 0 {
		batch := &pgx.Batch{}
		for i, r := range list {
			batch.Queue(`INSERT INTO resources (id, title, url, position) VALUES ($1, $2, $3, $4)`,
				r.ID, r.Title, r.URL, i)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert resources: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}
