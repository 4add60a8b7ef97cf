package repository

import (
	"context"
	"fmt"

	"dugout/database"
	"dugout/models"

	"github.com/jackc/pgx/v5"
)

// BetRepository implements the service.BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = `id, user_id, bet, payout, game_pk, team_id, kind, reason, created_at`

func scanBet(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.Bet,
		&bet.Payout,
		&bet.GamePk,
		&bet.TeamID,
		&bet.Kind,
		&bet.Reason,
		&bet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func scanBets(rows pgx.Rows) ([]*models.Bet, error) {
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// Create persists a new bet and fills in its ID and creation time
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (user_id, bet, payout, game_pk, team_id, kind, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.Bet,
		bet.Payout,
		bet.GamePk,
		bet.TeamID,
		bet.Kind,
		bet.Reason,
	).Scan(&bet.ID, &bet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bet for user %d: %w", bet.UserID, err)
	}

	return nil
}

// GetByID retrieves a bet by its ID, or nil if none exists
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}

	return bet, nil
}

// GetByUser returns a user's bets, newest first
func (r *BetRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d: %w", userID, err)
	}

	return scanBets(rows)
}

// GetOpenByGamePk returns all open bets referencing a game
func (r *BetRepository) GetOpenByGamePk(ctx context.Context, gamePk int64) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE game_pk = $1
		  AND kind IN ('pending', 'automated')
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, gamePk)
	if err != nil {
		return nil, fmt.Errorf("failed to get open bets for game %d: %w", gamePk, err)
	}

	return scanBets(rows)
}

// GetMostRecentByReason returns the user's newest bet with the given
// reason, or nil if none exists
func (r *BetRepository) GetMostRecentByReason(ctx context.Context, userID int64, reason string) (*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1
		  AND reason = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	bet, err := scanBet(r.q.QueryRow(ctx, query, userID, reason))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent %q bet for user %d: %w", reason, userID, err)
	}

	return bet, nil
}

// Settle transitions an open bet to a terminal kind and records its
// payout. The kind guard makes this a compare-and-set: only one caller
// can move a bet out of its open state.
func (r *BetRepository) Settle(ctx context.Context, id int64, kind models.BetKind, payout int64) (bool, error) {
	query := `
		UPDATE bets
		SET kind = $2, payout = $3
		WHERE id = $1
		  AND kind IN ('pending', 'automated')
	`

	result, err := r.q.Exec(ctx, query, id, kind, payout)
	if err != nil {
		return false, fmt.Errorf("failed to settle bet %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteOpen removes a bet that is still in an open state
func (r *BetRepository) DeleteOpen(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM bets
		WHERE id = $1
		  AND kind IN ('pending', 'automated')
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete bet %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
