package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	repomocks "wellnessapi/internal/repository/mocks"
)

// The cache is nil throughout: every path must work without Redis.

func TestSettingService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(repomocks.MockSettingRepository)
	svc := NewSettingService(repo, nil)

	t.Run("found", func(t *testing.T) {
		repo.On("FindByKey", ctx, "contact_email").
			Return(&model.Setting{Key: "contact_email", Value: "hello@example.com"}, nil).Once()

		s, err := svc.Get(ctx, "contact_email")

		require.NoError(t, err)
		assert.Equal(t, "hello@example.com", s.Value)
	})

	t.Run("missing key", func(t *testing.T) {
		repo.On("FindByKey", ctx, "nope").Return(nil, errs.NotFound("setting not found")).Once()

		_, err := svc.Get(ctx, "nope")

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := svc.Get(ctx, "")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestSettingService_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := new(repomocks.MockSettingRepository)
	svc := NewSettingService(repo, nil)

	repo.On("Upsert", ctx, "banner_text", "20% off this week").
		Return(&model.Setting{Key: "banner_text", Value: "20% off this week"}, nil)

	s, err := svc.Upsert(ctx, "banner_text", "20% off this week")

	require.NoError(t, err)
	assert.Equal(t, "20% off this week", s.Value)

	_, err = svc.Upsert(ctx, "", "x")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestSettingService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(repomocks.MockSettingRepository)
	svc := NewSettingService(repo, nil)

	repo.On("DeleteByKey", ctx, "banner_text").Return(nil)

	require.NoError(t, svc.Delete(ctx, "banner_text"))

	err := svc.Delete(ctx, "")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestSettingService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(repomocks.MockSettingRepository)
	svc := NewSettingService(repo, nil)

	repo.On("List", ctx).Return([]model.Setting{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}, nil)

	settings, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Len(t, settings, 2)
}
