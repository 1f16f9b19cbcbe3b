package slug

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation stripped", "Yoga Basics!!", "yoga-basics"},
		{"lower cased", "MIND AND BODY", "mind-and-body"},
		{"ampersand collapses", "Mind & Body", "mind-body"},
		{"runs of separators collapse", "a  --  b", "a-b"},
		{"leading and trailing trimmed", "  !hello!  ", "hello"},
		{"digits kept", "Top 10 Stretches", "top-10-stretches"},
		{"accents folded", "Crème Brûlée", "creme-brulee"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func neverExists(ctx context.Context, s string) (bool, error) { return false, nil }

func TestResolve_NewRecord(t *testing.T) {
	got, err := Resolve(context.Background(), "Yoga Basics!!", "", "", true, neverExists)
	require.NoError(t, err)
	assert.Equal(t, "yoga-basics", got)
}

func TestResolve_UnchangedTitleSkipsCheck(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, s string) (bool, error) {
		calls++
		return false, nil
	}

	got, err := Resolve(context.Background(), "Yoga Basics", "Yoga Basics", "yoga-basics", false, exists)
	require.NoError(t, err)
	assert.Equal(t, "yoga-basics", got)
	assert.Zero(t, calls, "unchanged title must not query for collisions")
}

func TestResolve_TitleChangeRederives(t *testing.T) {
	got, err := Resolve(context.Background(), "Mind And Body", "Mind & Body", "mind-body", false, neverExists)
	require.NoError(t, err)
	assert.Equal(t, "mind-and-body", got)
}

func TestResolve_Disambiguation(t *testing.T) {
	taken := map[string]bool{"yoga-basics": true, "yoga-basics-1": true}
	exists := func(ctx context.Context, s string) (bool, error) {
		return taken[s], nil
	}

	got, err := Resolve(context.Background(), "Yoga Basics", "", "", true, exists)
	require.NoError(t, err)
	assert.Equal(t, "yoga-basics-2", got)
}

func TestResolve_FirstCollisionGetsSuffixOne(t *testing.T) {
	exists := func(ctx context.Context, s string) (bool, error) {
		return s == "yoga-basics", nil
	}

	got, err := Resolve(context.Background(), "Yoga Basics", "", "", true, exists)
	require.NoError(t, err)
	assert.Equal(t, "yoga-basics-1", got)
}

func TestResolve_EmptyDerivation(t *testing.T) {
	_, err := Resolve(context.Background(), "!!!", "", "", true, neverExists)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestResolve_ExistsError(t *testing.T) {
	boom := errors.New("db down")
	exists := func(ctx context.Context, s string) (bool, error) { return false, boom }

	_, err := Resolve(context.Background(), "Yoga Basics", "", "", true, exists)
	assert.ErrorIs(t, err, boom)
}

func TestResolve_BoundedAttempts(t *testing.T) {
	everything := func(ctx context.Context, s string) (bool, error) { return true, nil }

	_, err := Resolve(context.Background(), "Yoga Basics", "", "", true, everything)
	assert.ErrorIs(t, err, ErrResolutionFailed)
}
