package service

import (
	"context"

	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/params"
	"yildizli-agac-api/core/realtime"
	"yildizli-agac-api/modules/notification/dto"
	"yildizli-agac-api/modules/notification/entity"
	"yildizli-agac-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo      repository.NotificationRepositoryInterface
	publisher realtime.Publisher
}

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
}

// NewNotificationService pushes every created notification to the user's
// open sockets when publisher is not nil.
func NewNotificationService(repo repository.NotificationRepositoryInterface, publisher realtime.Publisher) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return nil, err
	}

	resp := toResponse(notif)
	if s.publisher != nil {
		s.publisher.SendToUser(req.UserID, realtime.NewMessage(realtime.TypeNotification, resp))
	}
	return resp, nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError) {
	result, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get notifications", err)
	}
	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "Invalid notification id: "+id, nil)
		}
		parsed = append(parsed, u)
	}
	if err := s.repo.MarkAsRead(ctx, userID, parsed); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "Failed to count unread", err)
	}
	return count, nil
}

func toResponse(n *entity.Notification) *dto.NotificationResponse {
	data := map[string]any(n.Data)
	if data == nil {
		data = map[string]any{}
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
