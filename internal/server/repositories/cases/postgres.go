// Package cases provides the PostgreSQL-backed, ownership-scoped case store.
// A case belonging to another owner is indistinguishable from an absent one:
// owner_id is part of every WHERE clause, so no query can return or touch a
// foreign row.
package cases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/supportcase/internal/common"
	"github.com/dmitrijs2005/supportcase/internal/dbx"
	"github.com/dmitrijs2005/supportcase/internal/server/models"
)

// PostgresRepository implements case storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all cases owned by ownerID, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.Case, error) {
	query :=
		`SELECT id, owner_id, title, description, created_at, updated_at FROM cases
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Case
	for rows.Next() {
		var item models.Case
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Description,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new case stamped with c.OwnerID.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Case) (*models.Case, error) {
	query :=
		`INSERT INTO cases (id, owner_id, title, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.OwnerID, c.Title, c.Description).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// Update replaces title/description of the case matching (caseID, ownerID).
// No matching row yields common.ErrorNotFound, whether the case is absent or
// owned by someone else.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, caseID, title, description string) (*models.Case, error) {
	query :=
		`UPDATE cases SET title = $1, description = $2, updated_at = now()
		 WHERE id = $3 AND owner_id = $4
		 RETURNING id, owner_id, title, description, created_at, updated_at
		 `

	c := &models.Case{}
	err := r.db.QueryRowContext(ctx, query, title, description, caseID, ownerID).Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// Delete removes the case matching (caseID, ownerID) permanently.
// Same not-found semantics as Update.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, caseID string) error {
	query :=
		`DELETE FROM cases
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, caseID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
