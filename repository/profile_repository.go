package repository

import (
	"context"
	"fmt"

	"dugout/database"
	"dugout/models"
	"dugout/service"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository implements the service.ProfileRepository interface
type ProfileRepository struct {
	q queryable
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{q: db.Pool}
}

// newProfileRepositoryWithTx creates a new profile repository with a transaction
func newProfileRepositoryWithTx(tx queryable) *ProfileRepository {
	return &ProfileRepository{q: tx}
}

// GetByUserID retrieves a profile by user ID, or nil if none exists
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, credits, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Credits,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}

	return &profile, nil
}

// GetByUserIDForUpdate retrieves a profile and holds its row lock until
// the transaction ends. Callers doing a check-then-act sequence on the
// user's state take this lock first so concurrent invocations serialize.
func (r *ProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, credits, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
		FOR UPDATE
	`

	var profile models.Profile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Credits,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock profile for user %d: %w", userID, err)
	}

	return &profile, nil
}

// Create inserts a new profile with the given starting credits. Returns
// nil without error when the profile already exists, so concurrent
// first-touch creations resolve to one insert instead of a key violation.
func (r *ProfileRepository) Create(ctx context.Context, userID int64, credits int64) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, credits)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id, credits, created_at, updated_at
	`

	var profile models.Profile
	err := r.q.QueryRow(ctx, query, userID, credits).Scan(
		&profile.UserID,
		&profile.Credits,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create profile for user %d: %w", userID, err)
	}

	return &profile, nil
}

// AddCredits adds to a profile's credits atomically
func (r *ProfileRepository) AddCredits(ctx context.Context, userID int64, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", service.ErrInvalidValue)
	}

	query := `
		UPDATE profiles
		SET credits = credits + $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to add credits for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: profile for user %d", service.ErrNotFound, userID)
	}

	return nil
}

// DeductCredits deducts from a profile's credits atomically and returns
// the balance after the debit, failing if the balance does not cover the
// amount. The conditional UPDATE is the per-user serialization point: two
// concurrent debits against a balance sufficient for one resolve to
// exactly one success, and the returned balance reflects the committed
// state rather than any earlier read.
func (r *ProfileRepository) DeductCredits(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", service.ErrInvalidValue)
	}

	query := `
		UPDATE profiles
		SET credits = credits - $1, updated_at = NOW()
		WHERE user_id = $2
		  AND credits >= $1
		RETURNING credits
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		// Distinguish a missing profile from an insufficient balance
		profile, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to check profile: %w", err)
		}
		if profile == nil {
			return 0, fmt.Errorf("%w: profile for user %d", service.ErrNotFound, userID)
		}
		return 0, fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientCredits, profile.Credits, amount)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct credits for user %d: %w", userID, err)
	}

	return balance, nil
}
