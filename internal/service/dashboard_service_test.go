package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type mockStatsRepo struct {
	stats *models.DashboardStats
	calls int
}

func (m *mockStatsRepo) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	m.calls++
	return m.stats, nil
}

type memoryCacheRepo struct {
	values map[string]interface{}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if stats, ok := value.(*models.DashboardStats); ok {
		*dest.(*models.DashboardStats) = *stats
	}
	return nil
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	m.values[key] = value
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.values = nil
	return nil
}

func TestDashboardStatsCachesResult(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{ActiveStudents: 40, ActiveVolunteers: 12}}
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewDashboardService(repo, cache, time.Minute, nil)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, first.ActiveStudents)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, second.ActiveStudents)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboardInvalidateForcesRecompute(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{Classes: 6}}
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewDashboardService(repo, cache, time.Minute, nil)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	svc.Invalidate(context.Background())
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardStatsWithoutCache(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{Subjects: 5}}
	cache := NewCacheService(nil, nil, time.Minute, nil, false)
	svc := NewDashboardService(repo, cache, time.Minute, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Subjects)
}
