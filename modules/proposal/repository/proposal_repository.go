package repository

import (
	"context"
	"database/sql"
	"errors"

	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/modules/proposal/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrDuplicateSubmission means the user already submitted this exact set.
	ErrDuplicateSubmission = errors.New("proposal submission already exists")
	// ErrConfirmationCodeTaken means the generated code collided; retry with a new one.
	ErrConfirmationCodeTaken = errors.New("confirmation code already in use")
)

const uniqueViolation = "23505"

// ProposalRepository handles submission persistence (proposal_submissions, proposal_slots)
type ProposalRepository struct {
	DB database.IDatabase
}

func NewProposalRepository(db database.IDatabase) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

type ProposalRepositoryInterface interface {
	CreateSubmission(ctx context.Context, sub *entity.Submission) error
	GetSubmissionByID(ctx context.Context, id uuid.UUID) (*entity.Submission, error)
	GetSubmissionByFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) (*entity.Submission, error)
	GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*entity.Submission, error)
	MarkSubmissionCurrent(ctx context.Context, sub *entity.Submission) error
}

const submissionColumns = `id, user_id, match_id, fingerprint, confirmation_code, created_at, updated_at`

// CreateSubmission inserts the submission and its slots in one transaction.
// sub.CreatedAt and sub.UpdatedAt are filled from the database.
func (r *ProposalRepository) CreateSubmission(ctx context.Context, sub *entity.Submission) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO proposal_submissions (id, user_id, match_id, fingerprint, confirmation_code)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			sub.ID, sub.UserID, sub.MatchID, sub.Fingerprint, sub.ConfirmationCode,
		).Scan(&sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return err
		}

		for i, slot := range sub.Slots {
			row := entity.SubmissionSlot{SubmissionID: sub.ID, Position: i, TimeSlot: slot}
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO proposal_slots (submission_id, position, slot_date, slot_hour)
				VALUES (:submission_id, :position, :slot_date, :slot_hour)
			`, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if pqErr.Constraint == "proposal_submissions_confirmation_code_key" {
			return ErrConfirmationCodeTaken
		}
		return ErrDuplicateSubmission
	}
	logger.Error("ProposalRepository:CreateSubmission", err)
	return err
}

func (r *ProposalRepository) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*entity.Submission, error) {
	return r.getOne(ctx, "ProposalRepository:GetSubmissionByID",
		`SELECT `+submissionColumns+` FROM proposal_submissions WHERE id = $1`, id)
}

func (r *ProposalRepository) GetSubmissionByFingerprint(ctx context.Context, userID uuid.UUID, fingerprint string) (*entity.Submission, error) {
	return r.getOne(ctx, "ProposalRepository:GetSubmissionByFingerprint",
		`SELECT `+submissionColumns+` FROM proposal_submissions WHERE user_id = $1 AND fingerprint = $2`,
		userID, fingerprint)
}

func (r *ProposalRepository) GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*entity.Submission, error) {
	return r.getOne(ctx, "ProposalRepository:GetLatestSubmission",
		`SELECT `+submissionColumns+` FROM proposal_submissions WHERE user_id = $1 ORDER BY updated_at DESC, created_at DESC LIMIT 1`,
		userID)
}

// MarkSubmissionCurrent bumps updated_at so sub becomes the user's latest
// submission again.
func (r *ProposalRepository) MarkSubmissionCurrent(ctx context.Context, sub *entity.Submission) error {
	query := `UPDATE proposal_submissions SET updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	if err := r.DB.QueryRowContext(ctx, query, sub.ID).Scan(&sub.UpdatedAt); err != nil {
		logger.Error("ProposalRepository:MarkSubmissionCurrent", err)
		return err
	}
	return nil
}

// getOne returns nil, nil when no row matches.
func (r *ProposalRepository) getOne(ctx context.Context, op, query string, args ...any) (*entity.Submission, error) {
	var sub entity.Submission
	if err := r.DB.GetContext(ctx, &sub, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error(op, err)
		return nil, err
	}

	slots, err := r.getSlots(ctx, sub.ID)
	if err != nil {
		logger.Error(op+":Slots", err)
		return nil, err
	}
	sub.Slots = slots
	return &sub, nil
}

func (r *ProposalRepository) getSlots(ctx context.Context, submissionID uuid.UUID) (entity.ProposalSet, error) {
	query := `
		SELECT submission_id, position, slot_date::text AS slot_date, slot_hour
		FROM proposal_slots
		WHERE submission_id = $1
		ORDER BY position
	`
	var rows []entity.SubmissionSlot
	if err := r.DB.SelectContext(ctx, &rows, query, submissionID); err != nil {
		return nil, err
	}

	set := make(entity.ProposalSet, 0, len(rows))
	for _, row := range rows {
		set = append(set, row.TimeSlot)
	}
	return set, nil
}
