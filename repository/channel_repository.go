package repository

import (
	"context"
	"fmt"

	"dugout/database"
	"dugout/models"
	"dugout/service"

	"github.com/jackc/pgx/v5"
)

// ChannelRepository implements the service.ChannelRepository interface
type ChannelRepository struct {
	q queryable
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *database.DB) *ChannelRepository {
	return &ChannelRepository{q: db.Pool}
}

// newChannelRepositoryWithTx creates a new channel repository with a transaction
func newChannelRepositoryWithTx(tx queryable) *ChannelRepository {
	return &ChannelRepository{q: tx}
}

const channelColumns = `id, only_scoring_plays, game_advisories, in_play_delay, no_play_delay, show_score_on_out3, created_at, updated_at`

func scanChannel(row pgx.Row) (*models.Channel, error) {
	var channel models.Channel
	err := row.Scan(
		&channel.ID,
		&channel.OnlyScoringPlays,
		&channel.GameAdvisories,
		&channel.InPlayDelay,
		&channel.NoPlayDelay,
		&channel.ShowScoreOnOut3,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByID retrieves a channel record, or nil if none exists
func (r *ChannelRepository) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`

	channel, err := scanChannel(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %d: %w", id, err)
	}

	return channel, nil
}

// GetOrCreate retrieves a channel record, creating it with default
// settings if absent
func (r *ChannelRepository) GetOrCreate(ctx context.Context, id int64) (*models.Channel, error) {
	channel, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if channel != nil {
		return channel, nil
	}

	query := `
		INSERT INTO channels (id)
		VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET updated_at = channels.updated_at
		RETURNING ` + channelColumns

	channel, err = scanChannel(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to create channel %d: %w", id, err)
	}

	return channel, nil
}

// UpdateField persists a single column of an existing channel record.
// Writing only the addressed column keeps concurrent writers on the same
// channel from overwriting each other's settings with stale reads. The
// column name comes from the closed field schema, never from user input.
func (r *ChannelRepository) UpdateField(ctx context.Context, id int64, column string, value any) error {
	query := fmt.Sprintf(
		`UPDATE channels SET %s = $2, updated_at = NOW() WHERE id = $1`,
		pgx.Identifier{column}.Sanitize(),
	)

	result, err := r.q.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("failed to update channel %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: channel %d", service.ErrNotFound, id)
	}

	return nil
}
