// Package worker runs the background side of a proposal submission: it
// publishes the slots to the counterpart and reports overlaps to both sides.
package worker

import (
	"context"
	"fmt"

	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/queue"
	"yildizli-agac-api/core/realtime"
	notificationDto "yildizli-agac-api/modules/notification/dto"
	notificationEntity "yildizli-agac-api/modules/notification/entity"
	"yildizli-agac-api/modules/proposal/entity"
	"yildizli-agac-api/modules/proposal/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type SubmissionSource interface {
	GetSubmissionByID(ctx context.Context, id uuid.UUID) (*entity.Submission, error)
	GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*entity.Submission, error)
}

type MatchStore interface {
	CounterpartProposals(ctx context.Context, userID uuid.UUID) (*uuid.UUID, []string, error)
	PublishProposals(ctx context.Context, fromUserID uuid.UUID, texts []string) ([]uuid.UUID, error)
}

type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) (*notificationDto.NotificationResponse, error)
}

type SubmissionWorker struct {
	submissions SubmissionSource
	matches     MatchStore
	notifier    Notifier
	publisher   realtime.Publisher
}

func NewSubmissionWorker(submissions SubmissionSource, matches MatchStore, notifier Notifier, publisher realtime.Publisher) *SubmissionWorker {
	return &SubmissionWorker{
		submissions: submissions,
		matches:     matches,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// Register attaches the handler to the queue server.
func (w *SubmissionWorker) Register(srv *queue.Server) {
	srv.Handle(queue.TypeProposalSubmitted, w.HandleProposalSubmitted)
}

func (w *SubmissionWorker) HandleProposalSubmitted(ctx context.Context, t *asynq.Task) error {
	p, err := queue.DecodeProposalSubmitted(t)
	if err != nil {
		return err
	}

	sub, err := w.submissions.GetSubmissionByID(ctx, p.SubmissionID)
	if err != nil {
		return fmt.Errorf("load submission %s: %w", p.SubmissionID, err)
	}
	if sub == nil {
		return fmt.Errorf("submission %s not found: %w", p.SubmissionID, asynq.SkipRetry)
	}

	texts := make([]string, 0, len(sub.Slots))
	for _, slot := range sub.Slots {
		text, err := service.FormatForeign(slot)
		if err != nil {
			return fmt.Errorf("format slot of %s: %v: %w", sub.ID, err, asynq.SkipRetry)
		}
		texts = append(texts, text)
	}

	owners, err := w.matches.PublishProposals(ctx, sub.UserID, texts)
	if err != nil {
		return fmt.Errorf("publish proposals of %s: %w", sub.UserID, err)
	}
	logger.Info("Worker:ProposalSubmitted:Published", "submission_id", sub.ID, "recipients", len(owners))

	// Submitter side: their new set against what the counterpart proposed.
	_, theirs, err := w.matches.CounterpartProposals(ctx, sub.UserID)
	if err != nil {
		return fmt.Errorf("load counterpart proposals for %s: %w", sub.UserID, err)
	}
	if err := w.report(ctx, sub.UserID, sub, service.DetectOverlaps(sub.Slots, theirs)); err != nil {
		return err
	}

	// Counterpart side: their latest set against the new proposals.
	for _, owner := range owners {
		w.publisher.SendToUser(owner, realtime.NewMessage(realtime.TypeCounterpartProposals, map[string]any{
			"proposals": texts,
		}))

		latest, err := w.submissions.GetLatestSubmission(ctx, owner)
		if err != nil {
			return fmt.Errorf("load latest submission of %s: %w", owner, err)
		}
		if latest == nil {
			if err := w.notifyNewProposals(ctx, owner, texts); err != nil {
				return err
			}
			continue
		}
		if err := w.report(ctx, owner, latest, service.DetectOverlaps(latest.Slots, texts)); err != nil {
			return err
		}
	}
	return nil
}

// report notifies userID about a non-empty overlap on sub.
func (w *SubmissionWorker) report(ctx context.Context, userID uuid.UUID, sub *entity.Submission, result service.OverlapResult) error {
	for _, s := range result.Skipped {
		logger.Warn("Worker:ProposalSubmitted:UnparsedProposal", "user_id", userID, "text", s.Text, "error", s.Err)
	}
	if result.Empty() {
		return nil
	}

	slots := make([]string, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, s.Display)
	}

	_, err := w.notifier.Create(ctx, &notificationDto.CreateNotificationRequest{
		UserID:  userID,
		Title:   "Ortak zaman bulundu",
		Message: "Eşleşmenizle aynı zamanı önerdiniz: " + slots[0],
		Type:    notificationEntity.TypeOverlapFound,
		Data: map[string]any{
			"submission_id": sub.ID.String(),
			"slots":         slots,
		},
	})
	if err != nil {
		return fmt.Errorf("create overlap notification for %s: %w", userID, err)
	}

	w.publisher.SendToUser(userID, realtime.NewMessage(realtime.TypeOverlapUpdated, realtime.OverlapPayload{
		SubmissionID: sub.ID.String(),
		Slots:        slots,
	}))
	logger.Info("Worker:ProposalSubmitted:Overlap", "user_id", userID, "submission_id", sub.ID, "slots", len(slots))
	return nil
}

func (w *SubmissionWorker) notifyNewProposals(ctx context.Context, userID uuid.UUID, texts []string) error {
	_, err := w.notifier.Create(ctx, &notificationDto.CreateNotificationRequest{
		UserID:  userID,
		Title:   "Eşleşmeniz zaman önerdi",
		Message: "Eşleşmeniz buluşma için zaman önerilerini gönderdi",
		Type:    notificationEntity.TypeCounterpartProposals,
		Data:    map[string]any{"proposals": texts},
	})
	if err != nil {
		return fmt.Errorf("create proposals notification for %s: %w", userID, err)
	}
	return nil
}
