package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wellnessapi/internal/cache"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
)

const (
	settingCachePrefix = "setting:"
	settingCacheTTL    = 10 * time.Minute
)

// SettingService defines site setting use cases. Single-key reads go through
// the cache; writes and deletes invalidate it.
type SettingService interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, key, value string) (*model.Setting, error)
	Delete(ctx context.Context, key string) error
}

type settingService struct {
	repo  repository.SettingRepository
	cache *cache.Client
}

// NewSettingService constructs a new SettingService. The cache may be nil.
func NewSettingService(repo repository.SettingRepository, c *cache.Client) SettingService {
	return &settingService{repo: repo, cache: c}
}

func (s *settingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	if key == "" {
		return nil, errs.Validation("key is required")
	}

	var cached model.Setting
	err := s.cache.Get(ctx, settingCachePrefix+key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.WarnContext(ctx, "setting cache read failed", "key", key, "error", err.Error())
	}

	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, settingCachePrefix+key, setting, settingCacheTTL); err != nil {
		slog.WarnContext(ctx, "setting cache write failed", "key", key, "error", err.Error())
	}
	return setting, nil
}

func (s *settingService) List(ctx context.Context) ([]model.Setting, error) {
	return s.repo.List(ctx)
}

func (s *settingService) Upsert(ctx context.Context, key, value string) (*model.Setting, error) {
	if key == "" {
		return nil, errs.Validation("key is required")
	}
	setting, err := s.repo.Upsert(ctx, key, value)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, settingCachePrefix+key); err != nil {
		slog.WarnContext(ctx, "setting cache invalidation failed", "key", key, "error", err.Error())
	}
	return setting, nil
}

func (s *settingService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errs.Validation("key is required")
	}
	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, settingCachePrefix+key); err != nil {
		slog.WarnContext(ctx, "setting cache invalidation failed", "key", key, "error", err.Error())
	}
	return nil
}
