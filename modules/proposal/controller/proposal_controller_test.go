package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/proposal/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeService struct {
	updateFn func(ctx context.Context, userID uuid.UUID, index int, req *dto.UpdateSlotRequest) (*dto.DraftResponse, *errors.AppError)
	submitFn func(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError)
}

func (f *fakeService) GetDraft(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError) {
	return &dto.DraftResponse{}, nil
}

func (f *fakeService) AddSlot(ctx context.Context, userID uuid.UUID) (*dto.DraftResponse, *errors.AppError) {
	return &dto.DraftResponse{}, nil
}

func (f *fakeService) RemoveSlot(ctx context.Context, userID uuid.UUID, index int) (*dto.DraftResponse, *errors.AppError) {
	return &dto.DraftResponse{}, nil
}

func (f *fakeService) UpdateSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.UpdateSlotRequest) (*dto.DraftResponse, *errors.AppError) {
	return f.updateFn(ctx, userID, index, req)
}

func (f *fakeService) MoveSlot(ctx context.Context, userID uuid.UUID, index int, req *dto.MoveSlotRequest) (*dto.DraftResponse, *errors.AppError) {
	return &dto.DraftResponse{}, nil
}

func (f *fakeService) SetPicker(ctx context.Context, userID uuid.UUID, index int, req *dto.PickerRequest) (*dto.DraftResponse, *errors.AppError) {
	return &dto.DraftResponse{}, nil
}

func (f *fakeService) ResetDraft(ctx context.Context, userID uuid.UUID) *errors.AppError {
	return nil
}

func (f *fakeService) Submit(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
	return f.submitFn(ctx, userID)
}

func (f *fakeService) GetLatestSubmission(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
	return nil, errors.NewAppError(errors.ErrNotFound, "Henüz öneri gönderilmedi", nil)
}

func newContext(method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != uuid.Nil {
		c.Set(constants.ContextTokenData, &utils.TokenClaims{UserID: userID})
	}
	return c, rec, e
}

func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestProposalController_RequiresUser(t *testing.T) {
	ctrl := NewProposalController(&fakeService{})
	c, rec, e := newContext(http.MethodGet, "/api/v1/private/proposals/draft", "", uuid.Nil)
	serve(e, c, ctrl.GetDraft)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestProposalController_UpdateSlot(t *testing.T) {
	userID := uuid.New()
	var gotIndex int
	var gotReq dto.UpdateSlotRequest
	ctrl := NewProposalController(&fakeService{
		updateFn: func(ctx context.Context, uid uuid.UUID, index int, req *dto.UpdateSlotRequest) (*dto.DraftResponse, *errors.AppError) {
			if uid != userID {
				t.Fatalf("user id = %s", uid)
			}
			gotIndex = index
			gotReq = *req
			return &dto.DraftResponse{MaxSlots: 3}, nil
		},
	})

	c, rec, e := newContext(http.MethodPatch, "/", `{"field":"date","value":"2025-12-27"}`, userID)
	c.SetParamNames("index")
	c.SetParamValues("2")
	serve(e, c, ctrl.UpdateSlot)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotIndex != 2 || gotReq.Field != "date" || gotReq.Value != "2025-12-27" {
		t.Fatalf("index = %d, req = %+v", gotIndex, gotReq)
	}

	c, rec, e = newContext(http.MethodPatch, "/", `{}`, userID)
	c.SetParamNames("index")
	c.SetParamValues("first")
	serve(e, c, ctrl.UpdateSlot)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad index status = %d, want 400", rec.Code)
	}
}

func TestProposalController_SubmitValidationError(t *testing.T) {
	ctrl := NewProposalController(&fakeService{
		submitFn: func(ctx context.Context, userID uuid.UUID) (*dto.SubmissionResponse, *errors.AppError) {
			return nil, errors.NewAppError(errors.ErrValidationFailed, "3. zaman slotu için tarih ve saat seçin", nil).
				WithDetails(&dto.ValidationResponse{Kind: "INCOMPLETE_SLOT", Index: 2, Message: "3. zaman slotu için tarih ve saat seçin"})
		},
	})

	c, rec, e := newContext(http.MethodPost, "/", "", uuid.New())
	serve(e, c, ctrl.Submit)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Index int `json:"index"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Code != "VALIDATION_FAILED" || body.Details.Index != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Message != "3. zaman slotu için tarih ve saat seçin" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestProposalController_GetSubmissionNotFound(t *testing.T) {
	ctrl := NewProposalController(&fakeService{})
	c, rec, e := newContext(http.MethodGet, "/", "", uuid.New())
	serve(e, c, ctrl.GetSubmission)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
