package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
)

var editor = Actor{Name: "editor"}

func (f *fixture) deactivate(t *testing.T, parentID uint64, s Strategy) (*StrategyResult, error) {
	t.Helper()
	var result *StrategyResult
	err := f.repos.Transaction(context.Background(), func(tx *repository.Repositories) error {
		var err error
		result, err = Deactivate(tx, parentID, s, editor, testNow)
		return err
	})
	return result, err
}

func TestDeactivateCascade(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	b := f.category(t, "b", a, true)
	c := f.category(t, "c", b, true)
	outside := f.category(t, "outside", nil, true)
	n1 := f.news(t, c, "c-one", models.NewsStatusPublish)
	n2 := f.news(t, c, "c-two", models.NewsStatusPublish)
	p := f.page(t, b, "b-page", true)
	untouched := f.news(t, outside, "outside-news", models.NewsStatusPublish)

	result, err := f.deactivate(t, a.ID, CascadeDeactivate{})
	require.NoError(t, err)

	assert.Equal(t, StrategyCascade, result.Strategy)
	assert.Equal(t, []uint64{a.ID, b.ID, c.ID}, result.CategoryIDs)
	assert.EqualValues(t, 3, result.DeactivatedCategories)
	assert.EqualValues(t, 2, result.AffectedArticles)
	assert.EqualValues(t, 1, result.AffectedPages)
	assert.Nil(t, result.MigratedTo)
	assert.Equal(t, []DependencyEntry{
		{CategoryID: b.ID, CategoryName: "b", PageCount: 1},
		{CategoryID: c.ID, CategoryName: "c", ArticleCount: 2},
	}, result.Report)

	for _, id := range result.CategoryIDs {
		got := f.reload(t, id)
		assert.False(t, got.IsActive)
		assert.Equal(t, "editor", got.UpdatedBy)
	}
	assert.True(t, f.reload(t, outside.ID).IsActive)

	for _, id := range []uint64{n1.ID, n2.ID} {
		got, err := f.repos.News.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.NewsStatusDraft, got.Status)
		assert.Equal(t, c.ID, got.CategoryID)
	}
	gotPage, err := f.repos.Page.GetByID(p.ID)
	require.NoError(t, err)
	assert.False(t, gotPage.IsPublished)

	gotOutside, err := f.repos.News.GetByID(untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewsStatusPublish, gotOutside.Status)
}

func TestDeactivateNilStrategyCascades(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	n := f.news(t, a, "a-news", models.NewsStatusPublish)

	result, err := f.deactivate(t, a.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyCascade, result.Strategy)

	got, err := f.repos.News.GetByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewsStatusDraft, got.Status)
}

func TestDeactivateMigrate(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	b := f.category(t, "b", a, true)
	target := f.category(t, "target", nil, true)
	published := f.news(t, a, "a-live", models.NewsStatusPublish)
	draft := f.news(t, b, "b-draft", models.NewsStatusDraft)
	p := f.page(t, b, "b-page", true)

	result, err := f.deactivate(t, a.ID, MigrateThenDeactivate{TargetID: target.ID})
	require.NoError(t, err)

	assert.Equal(t, StrategyMigrate, result.Strategy)
	assert.EqualValues(t, 2, result.DeactivatedCategories)
	assert.EqualValues(t, 2, result.AffectedArticles)
	assert.EqualValues(t, 1, result.AffectedPages)
	require.NotNil(t, result.MigratedTo)
	assert.Equal(t, target.ID, *result.MigratedTo)

	gotPublished, err := f.repos.News.GetByID(published.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, gotPublished.CategoryID)
	assert.Equal(t, models.NewsStatusPublish, gotPublished.Status)

	gotDraft, err := f.repos.News.GetByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, gotDraft.CategoryID)
	assert.Equal(t, models.NewsStatusDraft, gotDraft.Status)

	gotPage, err := f.repos.Page.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, gotPage.CategoryID)
	assert.True(t, gotPage.IsPublished)

	assert.False(t, f.reload(t, a.ID).IsActive)
	assert.False(t, f.reload(t, b.ID).IsActive)
	assert.True(t, f.reload(t, target.ID).IsActive)
}

func TestDeactivateMigrateRejectsBadTargets(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	b := f.category(t, "b", a, true)
	inactive := f.category(t, "inactive", nil, false)
	f.news(t, b, "b-news", models.NewsStatusPublish)
	f.page(t, a, "a-page", true)

	tests := []struct {
		name   string
		target uint64
		err    error
	}{
		{name: "missing", target: 0, err: ErrMigrateTargetMissing},
		{name: "parent itself", target: a.ID, err: ErrMigrateTargetInBranch},
		{name: "descendant", target: b.ID, err: ErrMigrateTargetInBranch},
		{name: "unknown", target: 9999, err: ErrMigrateTargetNotFound},
		{name: "inactive", target: inactive.ID, err: ErrMigrateTargetInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.snapshot(t)
			result, err := f.deactivate(t, a.ID, MigrateThenDeactivate{TargetID: tt.target})
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, result)
			assert.Equal(t, before, f.snapshot(t))
		})
	}
}

func TestDeactivateOnly(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	b := f.category(t, "b", a, true)
	n := f.news(t, b, "b-news", models.NewsStatusPublish)
	p := f.page(t, a, "a-page", true)
	newsBefore, err := f.repos.News.GetByID(n.ID)
	require.NoError(t, err)
	pageBefore, err := f.repos.Page.GetByID(p.ID)
	require.NoError(t, err)

	result, err := f.deactivate(t, a.ID, DeactivateOnly{})
	require.NoError(t, err)

	assert.Equal(t, StrategyCategoriesOnly, result.Strategy)
	assert.EqualValues(t, 2, result.DeactivatedCategories)
	assert.Zero(t, result.AffectedArticles)
	assert.Zero(t, result.AffectedPages)
	assert.Len(t, result.Report, 2)

	newsAfter, err := f.repos.News.GetByID(n.ID)
	require.NoError(t, err)
	assert.Equal(t, newsBefore, newsAfter)
	pageAfter, err := f.repos.Page.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, pageBefore, pageAfter)

	assert.False(t, f.reload(t, a.ID).IsActive)
	assert.False(t, f.reload(t, b.ID).IsActive)
}

func TestDeactivateStopsOnCycle(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "a", nil, true)
	b := f.category(t, "b", a, true)
	f.setParent(t, a.ID, b.ID)

	before := f.snapshot(t)
	_, err := f.deactivate(t, a.ID, CascadeDeactivate{})
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.Equal(t, before, f.snapshot(t))
}
