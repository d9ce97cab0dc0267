package service

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/upstream"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/account/dto"

	"github.com/google/uuid"
)

// Upstream is the part of the account API client this module needs.
type Upstream interface {
	Register(ctx context.Context, req *upstream.RegisterRequest) (string, error)
	Login(ctx context.Context, req *upstream.LoginRequest) (*upstream.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, verificationToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	GetCurrentUser(ctx context.Context, token string) (*upstream.User, error)
}

type Settings struct {
	UserCacheTTL time.Duration
	// How long a logged-out token stays blacklisted when it carries no expiry.
	SessionTTL time.Duration
}

type AccountService struct {
	client   Upstream
	cache    cache.Cache
	settings Settings
}

type AccountServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string, expiresAt *time.Time) *errors.AppError
	Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.MessageResponse, *errors.AppError)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.MessageResponse, *errors.AppError)
	Me(ctx context.Context, token string) (*dto.UserResponse, *errors.AppError)
	ResolveSession(ctx context.Context, token string) (*utils.TokenClaims, error)
}

func NewAccountService(client Upstream, c cache.Cache, settings Settings) *AccountService {
	if settings.UserCacheTTL <= 0 {
		settings.UserCacheTTL = 5 * time.Minute
	}
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = 24 * time.Hour
	}
	return &AccountService{client: client, cache: c, settings: settings}
}

func userKey(token string) string {
	return constants.RedisKeyCurrentUser + utils.HashToken(token)
}

func (s *AccountService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, *errors.AppError) {
	msg, err := s.client.Register(ctx, &upstream.RegisterRequest{
		Email:       strings.TrimSpace(req.Email),
		Password:    req.Password,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Gender:      req.Gender,
		InterestIDs: req.InterestIDs,
	})
	if err != nil {
		return nil, upstreamError("AccountService:Register", err)
	}
	if msg == "" {
		msg = "Kayıt başarılı. Lütfen e-posta adresinizi doğrulayın."
	}
	return &dto.MessageResponse{Message: msg}, nil
}

func (s *AccountService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	result, err := s.client.Login(ctx, &upstream.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return nil, upstreamError("AccountService:Login", err)
	}
	if result.Token == "" {
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "Giriş yanıtı eksik", nil)
	}

	resp := &dto.LoginResponse{Token: result.Token}
	if result.User != nil {
		resp.User = toUserResponse(result.User)
		if err := s.cache.SetJSON(ctx, userKey(result.Token), result.User, s.settings.UserCacheTTL); err != nil {
			logger.Warn("AccountService:Login:CacheUser", "error", err)
		}
	}
	return resp, nil
}

// Logout always ends the local session. An upstream failure is logged and
// otherwise ignored.
func (s *AccountService) Logout(ctx context.Context, token string, expiresAt *time.Time) *errors.AppError {
	if err := s.client.Logout(ctx, token); err != nil {
		logger.Warn("AccountService:Logout:Upstream", "error", err)
	}

	ttl := s.settings.SessionTTL
	if expiresAt != nil {
		if remaining := time.Until(*expiresAt); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Oturum kapatılamadı", err)
	}
	if err := s.cache.Delete(ctx, userKey(token)); err != nil {
		logger.Warn("AccountService:Logout:CacheDelete", "error", err)
	}
	return nil
}

func (s *AccountService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.MessageResponse, *errors.AppError) {
	msg, err := s.client.Verify(ctx, strings.TrimSpace(req.Token))
	if err != nil {
		return nil, upstreamError("AccountService:Verify", err)
	}
	if msg == "" {
		msg = "E-posta adresiniz doğrulandı"
	}
	return &dto.MessageResponse{Message: msg}, nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.MessageResponse, *errors.AppError) {
	msg, err := s.client.ForgotPassword(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, upstreamError("AccountService:ForgotPassword", err)
	}
	if msg == "" {
		msg = "Şifre sıfırlama e-postası gönderildi"
	}
	return &dto.MessageResponse{Message: msg}, nil
}

func (s *AccountService) Me(ctx context.Context, token string) (*dto.UserResponse, *errors.AppError) {
	user, err := s.currentUser(ctx, token)
	if err != nil {
		return nil, upstreamError("AccountService:Me", err)
	}
	return toUserResponse(user), nil
}

// ResolveSession backs the auth middleware when no JWT secret is set.
func (s *AccountService) ResolveSession(ctx context.Context, token string) (*utils.TokenClaims, error) {
	user, err := s.currentUser(ctx, token)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			return nil, utils.ErrInvalidToken
		}
		return nil, err
	}

	id := user.UserID
	if id == "" && user.ID != 0 {
		id = strconv.FormatInt(user.ID, 10)
	}
	userID := utils.UserUUID(id)
	if userID == uuid.Nil {
		return nil, utils.ErrInvalidToken
	}
	return &utils.TokenClaims{UserID: userID, Email: user.Email}, nil
}

func (s *AccountService) currentUser(ctx context.Context, token string) (*upstream.User, error) {
	var cached upstream.User
	err := s.cache.GetJSON(ctx, userKey(token), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("AccountService:CurrentUser:Cache", "error", err)
	}

	user, err := s.client.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, userKey(token), user, s.settings.UserCacheTTL); err != nil {
		logger.Warn("AccountService:CurrentUser:CacheSet", "error", err)
	}
	return user, nil
}

// upstreamError maps client failures onto application errors. Network
// failures are retryable by the caller.
func upstreamError(op string, err error) *errors.AppError {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return errors.NewAppError(errors.ErrUnauthorized, apiErr.Message, err)
		case apiErr.Status == http.StatusForbidden:
			return errors.NewAppError(errors.ErrForbidden, apiErr.Message, err)
		case apiErr.Status == http.StatusNotFound:
			return errors.NewAppError(errors.ErrNotFound, apiErr.Message, err)
		case apiErr.Status == http.StatusConflict:
			return errors.NewAppError(errors.ErrAlreadyExists, apiErr.Message, err)
		case apiErr.Status < http.StatusInternalServerError:
			return errors.NewAppError(errors.ErrInvalidInput, apiErr.Message, err)
		}
	}
	logger.Error(op, err)
	return errors.NewAppError(errors.ErrUpstreamUnavailable, "Sunucuya ulaşılamadı, lütfen tekrar deneyin", err)
}

func toUserResponse(u *upstream.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Approved:  u.Approved,
		Gender:    u.Gender,
	}
}
