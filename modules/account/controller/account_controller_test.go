package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/account/dto"

	"github.com/labstack/echo/v4"
)

type fakeService struct {
	registered  int
	logoutToken string
}

func (f *fakeService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, *errors.AppError) {
	f.registered++
	return &dto.MessageResponse{Message: "ok"}, nil
}

func (f *fakeService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	return &dto.LoginResponse{Token: "tok"}, nil
}

func (f *fakeService) Logout(ctx context.Context, token string, expiresAt *time.Time) *errors.AppError {
	f.logoutToken = token
	return nil
}

func (f *fakeService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.MessageResponse, *errors.AppError) {
	return &dto.MessageResponse{Message: "ok"}, nil
}

func (f *fakeService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.MessageResponse, *errors.AppError) {
	return &dto.MessageResponse{Message: "ok"}, nil
}

func (f *fakeService) Me(ctx context.Context, token string) (*dto.UserResponse, *errors.AppError) {
	return &dto.UserResponse{Email: "a@std.yildiz.edu.tr"}, nil
}

func (f *fakeService) ResolveSession(ctx context.Context, token string) (*utils.TokenClaims, error) {
	return nil, utils.ErrInvalidToken
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestRegister_RejectsForeignDomain(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewAccountController(svc, "")
	c, rec, e := newContext(http.MethodPost, `{"email":"a@gmail.com","password":"kardan","confirm_password":"kardan","gender":"ERKEK"}`)
	serve(e, c, ctrl.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "Lütfen YTÜ öğrenci mail adresinizi kullanın (@std.yildiz.edu.tr)" {
		t.Errorf("message = %q", body.Message)
	}
	if svc.registered != 0 {
		t.Fatal("upstream must not be called when validation fails")
	}
}

func TestLogin_SetsCookie(t *testing.T) {
	ctrl := NewAccountController(&fakeService{}, "session")
	c, rec, e := newContext(http.MethodPost, `{"email":"a@std.yildiz.edu.tr","password":"kardan"}`)
	serve(e, c, ctrl.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "tok" || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestLogout_UsesSessionToken(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewAccountController(svc, "")

	c, rec, e := newContext(http.MethodPost, "")
	serve(e, c, ctrl.Logout)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	c, rec, e = newContext(http.MethodPost, "")
	c.Set(constants.ContextToken, "tok")
	serve(e, c, ctrl.Logout)
	if rec.Code != http.StatusOK || svc.logoutToken != "tok" {
		t.Fatalf("status = %d, token = %q", rec.Code, svc.logoutToken)
	}
}
