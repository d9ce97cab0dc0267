package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/upstream"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/interest/dto"

	"github.com/gosimple/slug"
)

type CatalogSource interface {
	GetAllInterests(ctx context.Context) ([]upstream.Interest, error)
}

type Settings struct {
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

type InterestService struct {
	source   CatalogSource
	cache    cache.Cache
	settings Settings
}

type InterestServiceInterface interface {
	List(ctx context.Context, search string) (*dto.InterestListResponse, *errors.AppError)
}

func NewInterestService(source CatalogSource, c cache.Cache, settings Settings) *InterestService {
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = 10 * time.Second
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = time.Hour
	}
	return &InterestService{source: source, cache: c, settings: settings}
}

// List returns the catalog sorted by name, filtered by a case and
// Turkish-casing insensitive substring match on search.
func (s *InterestService) List(ctx context.Context, search string) (*dto.InterestListResponse, *errors.AppError) {
	items, appErr := s.catalog(ctx)
	if appErr != nil {
		return nil, appErr
	}

	if q := utils.FoldTurkish(search); q != "" {
		qSlug := slug.MakeLang(q, "tr")
		filtered := make([]dto.InterestResponse, 0, len(items))
		for _, it := range items {
			if strings.Contains(utils.FoldTurkish(it.Name), q) || (qSlug != "" && strings.Contains(it.Slug, qSlug)) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	return &dto.InterestListResponse{Items: items, Total: len(items)}, nil
}

func (s *InterestService) catalog(ctx context.Context) ([]dto.InterestResponse, *errors.AppError) {
	var cached []dto.InterestResponse
	err := s.cache.GetJSON(ctx, constants.RedisKeyInterestCatalog, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("InterestService:Catalog:Cache", "error", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.settings.FetchTimeout)
	defer cancel()
	raw, err := s.source.GetAllInterests(fetchCtx)
	if err != nil {
		logger.Error("InterestService:Catalog:Fetch", err)
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "İlgi alanları yüklenemedi", err)
	}

	items := make([]dto.InterestResponse, 0, len(raw))
	for _, in := range raw {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		items = append(items, dto.InterestResponse{ID: in.ID, Name: name, Slug: slug.MakeLang(name, "tr")})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return utils.FoldTurkish(items[i].Name) < utils.FoldTurkish(items[j].Name)
	})

	if err := s.cache.SetJSON(ctx, constants.RedisKeyInterestCatalog, items, s.settings.CacheTTL); err != nil {
		logger.Warn("InterestService:Catalog:CacheSet", "error", err)
	}
	return items, nil
}
