package service

import (
	"context"
	"sort"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/queue"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/proposal/dto"
	"yildizli-agac-api/modules/proposal/entity"
	"yildizli-agac-api/modules/proposal/repository"

	"github.com/google/uuid"
)

const maxCodeAttempts = 3

// CounterpartSource looks up the user's match. A user without a match gets
// a nil match id and no proposals.
type CounterpartSource interface {
	CounterpartProposals(ctx context.Context, userID uuid.UUID) (matchID *uuid.UUID, proposals []string, err error)
}

type Enqueuer interface {
	EnqueueProposalSubmitted(ctx context.Context, p queue.ProposalSubmittedPayload) error
}

type Settings struct {
	RequireDistinctDates bool
	DraftTTL             time.Duration
	SubmitDelay          time.Duration
	Location             *time.Location
	Now                  func() time.Time
}

type ProposalService struct {
	repo     repository.ProposalRepositoryInterface
	matches  CounterpartSource
	cache    cache.Cache
	queue    Enqueuer
	settings Settings
}

type ProposalServiceInterface interface {
	GetDraft(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError)
	AddSlot(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError)
	RemoveSlot(ctx context.Context, userID uuid.UUID, index int) (*dto.DraftResponse, *errors.AppError)
	UpdateSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.UpdateSlotRequest) (*dto.DraftResponse, *errors.AppError)
	MoveSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.MoveSlotRequest) (*dto.DraftResponse, *errors.AppError)
	SetPicker(ctx context.Context, userID uuid.UUID, index int, req *dto.PickerRequest) (*dto.DraftResponse, *errors.AppError)
	ResetDraft(ctx context.Context, userID uuid.UUID) *errors.AppError
	Submit(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError)
	GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError)
}

func NewProposalService(repo repository.ProposalRepositoryInterface, matches CounterpartSource, c cache.Cache, q Enqueuer, settings Settings) ProposalServiceInterface {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.DraftTTL <= 0 {
		settings.DraftTTL = 24 * time.Hour
	}
	return &ProposalService{
		repo:     repo,
		matches:  matches,
		cache:    c,
		queue:    q,
		settings: settings,
	}
}

// session is one loaded draft plus the match data it is edited against.
type session struct {
	editor      *Editor
	matchID     *uuid.UUID
	counterpart []string
	updatedAt   *time.Time
}

func draftKey(userID uuid.UUID) string {
	return constants.RedisKeyProposalDraft + userID.String()
}

func (s *ProposalService) load(ctx context.Context, userID uuid.UUID) (*session, *errors.AppError) {
	matchID, counterpart, err := s.matches.CounterpartProposals(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Eşleşme bilgisi alınamadı", err)
	}

	var draft entity.Draft
	var updatedAt *time.Time
	err = s.cache.GetJSON(ctx, draftKey(userID), &draft)
	switch {
	case err == nil:
		updatedAt = &draft.UpdatedAt
	case errors.Is(err, cache.ErrCacheMiss):
		draft = entity.Draft{}
	default:
		return nil, errors.NewAppError(errors.ErrGetFailed, "Taslak yüklenemedi", err)
	}

	opts := []EditorOption{WithClock(s.settings.Now), WithLocation(s.settings.Location)}
	if p := draft.Pending; p != nil {
		opts = append(opts, WithPendingError(&ValidationError{Kind: ValidationKind(p.Kind), Index: p.Index, Message: p.Message}))
	}
	editor := NewEditor(draft.Slots, draft.Pickers, counterpart, opts...)
	return &session{editor: editor, matchID: matchID, counterpart: counterpart, updatedAt: updatedAt}, nil
}

func (s *ProposalService) save(ctx context.Context, userID uuid.UUID, sess *session) *errors.AppError {
	now := s.settings.Now()
	draft := entity.Draft{
		Slots:     sess.editor.Slots(),
		Pickers:   sess.editor.Pickers(),
		UpdatedAt: now,
	}
	var vErr *ValidationError
	if errors.As(sess.editor.PendingError(), &vErr) {
		draft.Pending = &entity.PendingValidation{Kind: string(vErr.Kind), Index: vErr.Index, Message: vErr.Message}
	}
	if err := s.cache.SetJSON(ctx, draftKey(userID), draft, s.settings.DraftTTL); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Taslak kaydedilemedi", err)
	}
	sess.updatedAt = &now
	return nil
}

// mutate loads the draft, applies fn and stores the result.
func (s *ProposalService) mutate(ctx context.Context, userID uuid.UUID, fn func(e *Editor) error) (*dto.DraftResponse, *errors.AppError) {
	sess, appErr := s.load(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if err := fn(sess.editor); err != nil {
		return nil, editorError(err)
	}
	if appErr := s.save(ctx, userID, sess); appErr != nil {
		return nil, appErr
	}
	return s.draftResponse(sess), nil
}

// GetDraft returns the draft with overlaps recomputed against the match.
func (s *ProposalService) GetDraft(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError) {
	sess, appErr := s.load(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	return s.draftResponse(sess), nil
}

// AddSlot appends an empty slot. A full set is returned unchanged.
func (s *ProposalService) AddSlot(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError) {
	return s.mutate(ctx, userID, func(e *Editor) error {
		e.AddSlot()
		return nil
	})
}

func (s *ProposalService) RemoveSlot(ctx context.Context, userID uuid.UUID, index int) (*dto.DraftResponse, *errors.AppError) {
	return s.mutate(ctx, userID, func(e *Editor) error {
		return e.RemoveSlot(index)
	})
}

func (s *ProposalService) UpdateSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.UpdateSlotRequest) (*dto.DraftResponse, *errors.AppError) {
	return s.mutate(ctx, userID, func(e *Editor) error {
		return e.UpdateSlot(index, SlotField(req.Field), req.Value)
	})
}

// MoveSlot moves a slot one rank up or down. Moves past either end are no-ops.
func (s *ProposalService) MoveSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.MoveSlotRequest) (*dto.DraftResponse, *errors.AppError) {
	if req.Direction != "up" && req.Direction != "down" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Geçersiz yön", nil)
	}
	return s.mutate(ctx, userID, func(e *Editor) error {
		if err := e.checkIndex(index); err != nil {
			return err
		}
		if req.Direction == "up" {
			e.MoveUp(index)
		} else {
			e.MoveDown(index)
		}
		return nil
	})
}

func (s *ProposalService) SetPicker(ctx context.Context, userID uuid.UUID, index int, req *dto.PickerRequest) (*dto.DraftResponse, *errors.AppError) {
	return s.mutate(ctx, userID, func(e *Editor) error {
		switch entity.PickerState(req.State) {
		case entity.PickerOpen:
			return e.OpenPicker(index, SlotField(req.Field))
		case entity.PickerClosed:
			return e.ClosePicker(index, SlotField(req.Field))
		}
		return ErrSlotField
	})
}

func (s *ProposalService) ResetDraft(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.cache.Delete(ctx, draftKey(userID)); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Taslak silinemedi", err)
	}
	return nil
}

// Submit validates the draft and stores it as an immutable submission. The
// draft is kept, so a retried submit finds the same fingerprint and returns
// the current submission instead of creating a second one. Choosing an
// earlier set again makes that row current and publishes it again.
func (s *ProposalService) Submit(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
	sess, appErr := s.load(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	if err := sess.editor.Validate(s.settings.RequireDistinctDates); err != nil {
		if appErr := s.save(ctx, userID, sess); appErr != nil {
			logger.Warn("ProposalService:Submit:SavePending", "user_id", userID, "error", appErr)
		}
		return nil, editorError(err)
	}

	lockKey := constants.RedisKeyProposalLock + userID.String()
	acquired, err := s.cache.AcquireLock(ctx, lockKey, constants.SubmitLockTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Gönderim kilidi alınamadı", err)
	}
	if !acquired {
		return nil, errors.NewAppError(errors.ErrConflict, "Önerileriniz zaten gönderiliyor", nil)
	}
	defer func() {
		if err := s.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			logger.Warn("ProposalService:Submit:ReleaseLock", "user_id", userID, "error", err)
		}
	}()

	slots := sess.editor.Slots()
	fingerprint := Fingerprint(slots)

	existing, err := s.repo.GetSubmissionByFingerprint(ctx, userID, fingerprint)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Önceki gönderim kontrol edilemedi", err)
	}
	if existing != nil {
		latest, err := s.repo.GetLatestSubmission(ctx, userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Önceki gönderim kontrol edilemedi", err)
		}
		if latest != nil && latest.ID == existing.ID {
			logger.Info("ProposalService:Submit:Duplicate", "user_id", userID, "submission_id", existing.ID)
			return s.submissionResponse(existing, true), nil
		}

		if err := s.repo.MarkSubmissionCurrent(ctx, existing); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Öneriler güncellenemedi", err)
		}
		s.enqueue(ctx, existing)
		logger.Info("ProposalService:Submit:Reselected", "user_id", userID, "submission_id", existing.ID)
		return s.submissionResponse(existing, false), nil
	}

	if d := s.settings.SubmitDelay; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.NewAppError(errors.ErrInternalServer, "İstek iptal edildi", ctx.Err())
		case <-timer.C:
		}
	}

	sub := &entity.Submission{
		ID:          uuid.New(),
		UserID:      userID,
		MatchID:     sess.matchID,
		Fingerprint: fingerprint,
		Slots:       slots,
	}
	duplicate, appErr := s.create(ctx, sub)
	if appErr != nil {
		return nil, appErr
	}
	if duplicate {
		return s.submissionResponse(sub, true), nil
	}

	s.enqueue(ctx, sub)
	logger.Info("ProposalService:Submit", "user_id", userID, "submission_id", sub.ID, "code", sub.ConfirmationCode)
	return s.submissionResponse(sub, false), nil
}

func (s *ProposalService) enqueue(ctx context.Context, sub *entity.Submission) {
	if s.queue == nil {
		return
	}
	payload := queue.ProposalSubmittedPayload{SubmissionID: sub.ID, UserID: sub.UserID}
	if err := s.queue.EnqueueProposalSubmitted(ctx, payload); err != nil {
		// The submission itself is stored; only the counterpart update is missing.
		logger.Error("ProposalService:Submit:Enqueue", "submission_id", sub.ID, "error", err)
	}
}

// create inserts sub, retrying on confirmation code collisions. When another
// request stored the same set first, sub is replaced by that row and
// duplicate is true.
func (s *ProposalService) create(ctx context.Context, sub *entity.Submission) (duplicate bool, appErr *errors.AppError) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateConfirmationCode()
		if err != nil {
			return false, errors.NewAppError(errors.ErrInternalServer, "Onay kodu üretilemedi", err)
		}
		sub.ConfirmationCode = code

		err = s.repo.CreateSubmission(ctx, sub)
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, repository.ErrConfirmationCodeTaken):
			continue
		case errors.Is(err, repository.ErrDuplicateSubmission):
			existing, getErr := s.repo.GetSubmissionByFingerprint(ctx, sub.UserID, sub.Fingerprint)
			if getErr != nil || existing == nil {
				return false, errors.NewAppError(errors.ErrConflict, "Önerileriniz zaten gönderildi", getErr)
			}
			*sub = *existing
			return true, nil
		default:
			return false, errors.NewAppError(errors.ErrCreateFailed, "Öneriler kaydedilemedi", err)
		}
	}
	return false, errors.NewAppError(errors.ErrCreateFailed, "Onay kodu üretilemedi", nil)
}

func (s *ProposalService) GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
	sub, err := s.repo.GetLatestSubmission(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Gönderim alınamadı", err)
	}
	if sub == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Henüz öneri gönderilmedi", nil)
	}
	return s.submissionResponse(sub, false), nil
}

// ===================== Mapping =====================

func (s *ProposalService) draftResponse(sess *session) *dto.DraftResponse {
	e := sess.editor
	slots := e.Slots()
	pickers := e.Pickers()
	overlaps := DetectOverlaps(slots, sess.counterpart)

	for _, skipped := range overlaps.Skipped {
		logger.Warn("ProposalService:Draft:UnparseableProposal", "index", skipped.Index, "text", skipped.Text, "error", skipped.Err)
	}

	resp := &dto.DraftResponse{
		Slots:                make([]dto.SlotResponse, 0, len(slots)),
		Overlaps:             make([]dto.OverlapResponse, 0, len(overlaps.Slots)),
		CounterpartProposals: nonNil(sess.counterpart),
		CounterpartDates:     sortedKeys(e.CounterpartDates()),
		MinDate:              e.Today(),
		MaxSlots:             entity.MaxSlots,
		CanAddSlot:           len(slots) < entity.MaxSlots,
		UpdatedAt:            sess.updatedAt,
	}
	for _, skipped := range overlaps.Skipped {
		resp.UnparsedProposals = append(resp.UnparsedProposals, skipped.Text)
	}

	for i, slot := range slots {
		view := slotResponse(i, slot)
		view.Overlaps = overlaps.Contains(i)
		view.DatePicker = string(pickers[i].Date)
		view.HourPicker = string(pickers[i].Hour)
		view.BlockedDates = blockedDates(e, i)
		resp.Slots = append(resp.Slots, view)
	}
	for _, o := range overlaps.Slots {
		resp.Overlaps = append(resp.Overlaps, dto.OverlapResponse{
			Index:   o.Index,
			Date:    o.Slot.Date,
			Hour:    o.Slot.Hour,
			Display: o.Display,
		})
	}

	if vErr := pendingValidation(e.PendingError()); vErr != nil {
		resp.Validation = vErr
	}
	return resp
}

// blockedDates lists sibling dates the slot at index may not reuse.
func blockedDates(e *Editor, index int) []string {
	blocked := []string{}
	for j, other := range e.slots {
		if j == index || other.Date == "" {
			continue
		}
		if err := e.CanSelectDate(index, other.Date); err != nil {
			blocked = append(blocked, other.Date)
		}
	}
	return blocked
}

func slotResponse(index int, slot entity.TimeSlot) dto.SlotResponse {
	view := dto.SlotResponse{
		Index:        index,
		Date:         slot.Date,
		Hour:         slot.Hour,
		Complete:     slot.Complete(),
		DatePicker:   string(entity.PickerClosed),
		HourPicker:   string(entity.PickerClosed),
		BlockedDates: []string{},
	}
	if slot.Complete() {
		if display, err := DisplaySlot(slot); err == nil {
			view.Display = display
		}
	} else if slot.Date != "" {
		if display, err := ToDisplay(slot.Date); err == nil {
			view.Display = display
		}
	}
	return view
}

func (s *ProposalService) submissionResponse(sub *entity.Submission, duplicate bool) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:               sub.ID.String(),
		ConfirmationCode: sub.ConfirmationCode,
		Slots:            make([]dto.SlotResponse, 0, len(sub.Slots)),
		Duplicate:        duplicate,
		CreatedAt:        sub.CreatedAt,
	}
	for i, slot := range sub.Slots {
		resp.Slots = append(resp.Slots, slotResponse(i, slot))
	}
	return resp
}

func pendingValidation(err error) *dto.ValidationResponse {
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		return nil
	}
	return &dto.ValidationResponse{Kind: string(vErr.Kind), Index: vErr.Index, Message: vErr.Message}
}

// editorError maps engine errors onto client-facing application errors.
func editorError(err error) *errors.AppError {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return errors.NewAppError(errors.ErrValidationFailed, vErr.Message, nil).
			WithDetails(pendingValidation(vErr))
	case errors.Is(err, ErrSlotIndex):
		return errors.NewAppError(errors.ErrNotFound, "Zaman slotu bulunamadı", nil)
	case errors.Is(err, ErrSlotField):
		return errors.NewAppError(errors.ErrInvalidInput, "Geçersiz alan", nil)
	case errors.Is(err, ErrPastDate):
		return errors.NewAppError(errors.ErrValidationFailed, "Geçmiş bir tarih seçilemez", nil)
	case errors.Is(err, ErrDateTaken):
		return errors.NewAppError(errors.ErrValidationFailed, "Bu tarih başka bir zaman slotunda seçili", nil)
	case errors.Is(err, ErrInvalidDate):
		return errors.NewAppError(errors.ErrValidationFailed, "Geçersiz tarih", nil)
	case errors.Is(err, ErrInvalidHour):
		return errors.NewAppError(errors.ErrValidationFailed, "Geçersiz saat", nil)
	}
	return errors.NewAppError(errors.ErrInternalServer, "Beklenmeyen hata", err)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
