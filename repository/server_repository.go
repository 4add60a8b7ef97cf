package repository

import (
	"context"
	"fmt"

	"dugout/database"
	"dugout/models"
	"dugout/service"

	"github.com/jackc/pgx/v5"
)

// ServerRepository implements the service.ServerRepository interface
type ServerRepository struct {
	q queryable
}

// NewServerRepository creates a new server repository
func NewServerRepository(db *database.DB) *ServerRepository {
	return &ServerRepository{q: db.Pool}
}

// newServerRepositoryWithTx creates a new server repository with a transaction
func newServerRepositoryWithTx(tx queryable) *ServerRepository {
	return &ServerRepository{q: tx}
}

// GetByID retrieves a server record, or nil if none exists
func (r *ServerRepository) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	query := `
		SELECT id, team_id, created_at, updated_at
		FROM servers
		WHERE id = $1
	`

	var server models.Server
	err := r.q.QueryRow(ctx, query, id).Scan(
		&server.ID,
		&server.TeamID,
		&server.CreatedAt,
		&server.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server %d: %w", id, err)
	}

	return &server, nil
}

// GetOrCreate retrieves a server record, creating it with default
// settings if absent
func (r *ServerRepository) GetOrCreate(ctx context.Context, id int64) (*models.Server, error) {
	server, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if server != nil {
		return server, nil
	}

	query := `
		INSERT INTO servers (id)
		VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET updated_at = servers.updated_at
		RETURNING id, team_id, created_at, updated_at
	`

	server = &models.Server{}
	err = r.q.QueryRow(ctx, query, id).Scan(
		&server.ID,
		&server.TeamID,
		&server.CreatedAt,
		&server.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create server %d: %w", id, err)
	}

	return server, nil
}

// UpdateField persists a single column of an existing server record. The
// column name comes from the closed field schema, never from user input.
func (r *ServerRepository) UpdateField(ctx context.Context, id int64, column string, value any) error {
	query := fmt.Sprintf(
		`UPDATE servers SET %s = $2, updated_at = NOW() WHERE id = $1`,
		pgx.Identifier{column}.Sanitize(),
	)

	result, err := r.q.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("failed to update server %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: server %d", service.ErrNotFound, id)
	}

	return nil
}
