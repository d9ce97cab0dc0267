package service

import (
	"context"
	"time"

	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/match/dto"
	"yildizli-agac-api/modules/match/entity"
	"yildizli-agac-api/modules/match/repository"
	"yildizli-agac-api/modules/match/validator"
	proposalservice "yildizli-agac-api/modules/proposal/service"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MatchService struct {
	repo repository.MatchRepositoryInterface
}

type MatchServiceInterface interface {
	GetMyMatch(ctx context.Context, userID uuid.UUID) (*dto.MatchResponse, *errors.AppError)
	Reveal(ctx context.Context, userID uuid.UUID) (*dto.MatchResponse, *errors.AppError)
	ImportMatches(ctx context.Context, req *dto.ImportMatchesRequest) (*dto.ImportMatchesResponse, *errors.AppError)

	// Used by the proposal module and its worker.
	CounterpartProposals(ctx context.Context, userID uuid.UUID) (*uuid.UUID, []string, error)
	MatchFor(ctx context.Context, userID uuid.UUID) (*entity.Match, error)
	PublishProposals(ctx context.Context, fromUserID uuid.UUID, texts []string) ([]uuid.UUID, error)
}

func NewMatchService(repo repository.MatchRepositoryInterface) MatchServiceInterface {
	return &MatchService{repo: repo}
}

func (s *MatchService) GetMyMatch(ctx context.Context, userID uuid.UUID) (*dto.MatchResponse, *errors.AppError) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Eşleşme bilgisi alınamadı", err)
	}
	if m == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Henüz bir eşleşmeniz yok", nil)
	}
	return matchResponse(m), nil
}

func (s *MatchService) Reveal(ctx context.Context, userID uuid.UUID) (*dto.MatchResponse, *errors.AppError) {
	m, err := s.repo.Reveal(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Eşleşme açılamadı", err)
	}
	if m == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Henüz bir eşleşmeniz yok", nil)
	}
	return matchResponse(m), nil
}

// ImportMatches upserts the valid entries of a batch. Invalid entries are
// reported back and do not block the rest.
func (s *MatchService) ImportMatches(ctx context.Context, req *dto.ImportMatchesRequest) (*dto.ImportMatchesResponse, *errors.AppError) {
	resp := &dto.ImportMatchesResponse{Failed: []dto.ImportError{}}
	valid := make([]*entity.Match, 0, len(req.Matches))

	for i, item := range req.Matches {
		if result := validator.ValidateMatchImport(i, item); result.HasError() {
			resp.Failed = append(resp.Failed, dto.ImportError{Index: i, Message: result.Errors[0].Message})
			continue
		}
		for _, text := range item.ProposedTimes {
			if _, err := proposalservice.ParseForeignSlot(text); err != nil {
				logger.Warn("MatchService:ImportMatches:UnparsedTime", "user_id", item.UserID, "text", text, "error", err)
				resp.UnparsedTimes = append(resp.UnparsedTimes, text)
			}
		}
		valid = append(valid, toEntity(item))
	}

	if len(valid) == 0 {
		return nil, errors.NewAppError(errors.ErrValidationFailed, "No valid matches in request", nil).WithDetails(resp)
	}
	if err := s.repo.UpsertMany(ctx, valid); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to import matches", err)
	}

	resp.Imported = len(valid)
	logger.Info("MatchService:ImportMatches", "imported", resp.Imported, "failed", len(resp.Failed))
	return resp, nil
}

// CounterpartProposals returns the user's match id and the time strings the
// counterpart proposed. No match means nil, nil, nil.
func (s *MatchService) CounterpartProposals(ctx context.Context, userID uuid.UUID) (*uuid.UUID, []string, error) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || m == nil {
		return nil, nil, err
	}
	id := m.ID
	return &id, []string(m.CounterpartProposedTimes), nil
}

func (s *MatchService) MatchFor(ctx context.Context, userID uuid.UUID) (*entity.Match, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// PublishProposals makes fromUserID's proposals visible to whoever is matched
// with them and returns those users.
func (s *MatchService) PublishProposals(ctx context.Context, fromUserID uuid.UUID, texts []string) ([]uuid.UUID, error) {
	return s.repo.PublishCounterpartProposals(ctx, fromUserID, texts)
}

func toEntity(item dto.MatchImport) *entity.Match {
	gender := entity.Gender(item.Counterpart.Gender)
	if gender == "" {
		gender = entity.GenderOther
	}
	matchDate, _ := time.Parse(time.DateOnly, item.MatchDate)
	deliveryDate, _ := time.Parse(time.DateOnly, item.DeliveryDate)
	return &entity.Match{
		UserID:                   utils.UserUUID(item.UserID),
		CounterpartID:            utils.UserUUID(item.CounterpartID),
		CounterpartFirstName:     item.Counterpart.FirstName,
		CounterpartLastName:      item.Counterpart.LastName,
		CounterpartEmail:         item.Counterpart.Email,
		CounterpartGender:        gender,
		CounterpartPreferences:   pq.StringArray(nonNil(item.Counterpart.Preferences)),
		FavoriteColor:            item.Counterpart.FavoriteColor,
		Hobbies:                  item.Counterpart.Hobbies,
		CounterpartProposedTimes: pq.StringArray(nonNil(item.ProposedTimes)),
		MatchDate:                matchDate,
		DeliveryDate:             deliveryDate,
	}
}

// matchResponse hides everything but initials until the match is revealed.
// Full name and e-mail are never exposed.
func matchResponse(m *entity.Match) *dto.MatchResponse {
	resp := &dto.MatchResponse{
		ID:                  m.ID.String(),
		Revealed:            m.Revealed(),
		RevealedAt:          m.RevealedAt,
		MatchDate:           m.MatchDate.Format(time.DateOnly),
		MatchDateDisplay:    proposalservice.FormatLongDate(m.MatchDate),
		DeliveryDate:        m.DeliveryDate.Format(time.DateOnly),
		DeliveryDateDisplay: proposalservice.FormatLongDate(m.DeliveryDate),
		Counterpart: dto.CounterpartResponse{
			Initials:      utils.Initials(m.CounterpartFirstName, m.CounterpartLastName),
			ProposedTimes: nonNil(m.CounterpartProposedTimes),
		},
	}
	if m.Revealed() {
		resp.Counterpart.Gender = string(m.CounterpartGender)
		resp.Counterpart.Preferences = nonNil(m.CounterpartPreferences)
		resp.Counterpart.FavoriteColor = m.FavoriteColor
		resp.Counterpart.Hobbies = m.Hobbies
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
