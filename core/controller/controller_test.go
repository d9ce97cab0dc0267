package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yildizli-agac-api/core/errors"

	"github.com/labstack/echo/v4"
)

func TestErrorResponse_MapsCodesToStatus(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ErrValidationFailed, http.StatusBadRequest},
		{errors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.ErrNotFound, http.StatusNotFound},
		{errors.ErrConflict, http.StatusConflict},
		{errors.ErrUpstreamUnavailable, http.StatusBadGateway},
		{errors.ErrInternalServer, http.StatusInternalServerError},
	}

	e := echo.New()
	h := NewBaseController()
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			appErr := errors.NewAppError(tt.code, "boom", nil).WithDetails(map[string]int{"index": 2})
			if err := h.ErrorResponse(c, appErr); err != nil {
				t.Fatalf("ErrorResponse() error = %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Code != tt.code || body.Message != "boom" {
				t.Fatalf("unexpected body %+v", body)
			}
			if body.Details == nil {
				t.Fatalf("details dropped")
			}
		})
	}
}

func TestSuccessResponse_Envelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := NewBaseController().SuccessResponse(c, map[string]string{"k": "v"}, "ok"); err != nil {
		t.Fatalf("SuccessResponse() error = %v", err)
	}

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Message != "ok" || body.Data["k"] != "v" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestNewErrorResponse_HidesInternalErrors(t *testing.T) {
	httpErr := NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "failed", errors.New("pq: secret detail"))
	body, ok := httpErr.Message.(*ErrorResponse)
	if !ok {
		t.Fatalf("message type = %T", httpErr.Message)
	}
	if body.Details != nil {
		t.Fatalf("details = %v, want nil", body.Details)
	}
}
