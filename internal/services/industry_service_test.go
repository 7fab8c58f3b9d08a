package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maplepath/api/internal/cache"
	"github.com/maplepath/api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndustries_ListIsCachedUntilCreate(t *testing.T) {
	repo := newFakeIndustryRepo(financeIndustry())
	svc := NewIndustryService(repo, cache.NewMemoryCache())
	ctx := context.Background()

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	created, err := svc.Create(ctx, IndustryInput{Name: "Healthcare", Tips: []string{"List your license", ""}})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"List your license"}, []string(created.Tips))

	list, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestIndustries_WithoutCache(t *testing.T) {
	repo := newFakeIndustryRepo()
	svc := NewIndustryService(repo, nil)

	list, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	repo.err = errors.New("db down")
	_, err = svc.ListActive(context.Background())
	requireCode(t, err, utils.CodeInternal)
}

func TestIndustries_CreateAndGet(t *testing.T) {
	svc := NewIndustryService(newFakeIndustryRepo(financeIndustry()), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, IndustryInput{Name: "Finance & Banking"})
	requireCode(t, err, utils.CodeConflict)

	_, err = svc.Create(ctx, IndustryInput{Name: ""})
	requireCode(t, err, utils.CodeInvalidArgument)

	ind, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Finance & Banking", ind.Name)

	_, err = svc.Get(ctx, 77)
	ae := requireCode(t, err, utils.CodeNotFound)
	assert.Equal(t, "Industry not found", ae.Message)
}
