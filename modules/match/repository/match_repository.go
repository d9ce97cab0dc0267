package repository

import (
	"context"
	"database/sql"
	"errors"

	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/modules/match/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// MatchRepository handles the matches table
type MatchRepository struct {
	DB database.IDatabase
}

func NewMatchRepository(db database.IDatabase) *MatchRepository {
	return &MatchRepository{DB: db}
}

type MatchRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Match, error)
	UpsertMany(ctx context.Context, matches []*entity.Match) error
	PublishCounterpartProposals(ctx context.Context, fromUserID uuid.UUID, texts []string) ([]uuid.UUID, error)
	Reveal(ctx context.Context, userID uuid.UUID) (*entity.Match, error)
}

const matchColumns = `id, user_id, counterpart_id, counterpart_first_name, counterpart_last_name,
	counterpart_email, counterpart_gender, counterpart_preferences, favorite_color, hobbies,
	counterpart_proposed_times, match_date, delivery_date, revealed_at, created_at, updated_at`

// GetByUserID returns nil, nil when the user has not been matched yet.
func (r *MatchRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Match, error) {
	var m entity.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user_id = $1`
	if err := r.DB.GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MatchRepository:GetByUserID", err)
		return nil, err
	}
	return &m, nil
}

// UpsertMany writes a whole import batch atomically. A re-import replaces the
// counterpart profile but keeps revealed_at and any published proposals.
func (r *MatchRepository) UpsertMany(ctx context.Context, matches []*entity.Match) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, m := range matches {
			query := `
				INSERT INTO matches (
					user_id, counterpart_id, counterpart_first_name, counterpart_last_name,
					counterpart_email, counterpart_gender, counterpart_preferences, favorite_color,
					hobbies, counterpart_proposed_times, match_date, delivery_date
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				ON CONFLICT (user_id) DO UPDATE SET
					counterpart_id = EXCLUDED.counterpart_id,
					counterpart_first_name = EXCLUDED.counterpart_first_name,
					counterpart_last_name = EXCLUDED.counterpart_last_name,
					counterpart_email = EXCLUDED.counterpart_email,
					counterpart_gender = EXCLUDED.counterpart_gender,
					counterpart_preferences = EXCLUDED.counterpart_preferences,
					favorite_color = EXCLUDED.favorite_color,
					hobbies = EXCLUDED.hobbies,
					counterpart_proposed_times = CASE
						WHEN cardinality(EXCLUDED.counterpart_proposed_times) > 0 THEN EXCLUDED.counterpart_proposed_times
						ELSE matches.counterpart_proposed_times
					END,
					match_date = EXCLUDED.match_date,
					delivery_date = EXCLUDED.delivery_date,
					updated_at = NOW()
				RETURNING id, created_at, updated_at
			`
			if err := tx.QueryRowxContext(ctx, query,
				m.UserID, m.CounterpartID, m.CounterpartFirstName, m.CounterpartLastName,
				m.CounterpartEmail, m.CounterpartGender, m.CounterpartPreferences, m.FavoriteColor,
				m.Hobbies, m.CounterpartProposedTimes, m.MatchDate, m.DeliveryDate,
			).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("MatchRepository:UpsertMany", err)
	}
	return err
}

// PublishCounterpartProposals stores fromUserID's proposals on every match
// row that points at them and returns the owners of those rows.
func (r *MatchRepository) PublishCounterpartProposals(ctx context.Context, fromUserID uuid.UUID, texts []string) ([]uuid.UUID, error) {
	query := `
		UPDATE matches
		SET counterpart_proposed_times = $2, updated_at = NOW()
		WHERE counterpart_id = $1
		RETURNING user_id
	`
	var owners []uuid.UUID
	if err := r.DB.SelectContext(ctx, &owners, query, fromUserID, pq.StringArray(texts)); err != nil {
		logger.Error("MatchRepository:PublishCounterpartProposals", err)
		return nil, err
	}
	return owners, nil
}

// Reveal marks the match as revealed. Revealing twice keeps the first time.
// Returns nil, nil when the user has no match.
func (r *MatchRepository) Reveal(ctx context.Context, userID uuid.UUID) (*entity.Match, error) {
	var m entity.Match
	query := `
		UPDATE matches
		SET revealed_at = COALESCE(revealed_at, NOW()), updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + matchColumns
	if err := r.DB.GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MatchRepository:Reveal", err)
		return nil, err
	}
	return &m, nil
}
