package category

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/revalidate"
	"github.com/medisite/cms/internal/pkg/testdb"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]revalidate.View
}

func (r *recordingNotifier) Invalidate(_ context.Context, views ...revalidate.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]revalidate.View(nil), views...))
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type fixture struct {
	db       *gorm.DB
	repos    *repository.Repositories
	notifier *recordingNotifier
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	repos := repository.NewRepositories(db)
	notifier := &recordingNotifier{}
	svc := NewService(repos, notifier, nil)
	svc.now = func() time.Time { return testNow }
	return &fixture{db: db, repos: repos, notifier: notifier, svc: svc}
}

func (f *fixture) category(t *testing.T, name string, parent *models.Category, active bool) *models.Category {
	t.Helper()
	c := &models.Category{
		Name:      name,
		Slug:      fmt.Sprintf("cat-%s", name),
		IsActive:  active,
		CreatedBy: "seed",
		UpdatedBy: "seed",
	}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, f.repos.Category.Create(c))
	return c
}

func (f *fixture) news(t *testing.T, c *models.Category, slug, status string) *models.News {
	t.Helper()
	n := &models.News{CategoryID: c.ID, Title: "Article " + slug, Slug: slug, Status: status, UpdatedBy: "seed"}
	require.NoError(t, n.Validate())
	require.NoError(t, f.repos.News.Create(n))
	return n
}

func (f *fixture) page(t *testing.T, c *models.Category, slug string, published bool) *models.Page {
	t.Helper()
	p := &models.Page{CategoryID: c.ID, Title: "Page " + slug, Slug: slug, IsPublished: published, UpdatedBy: "seed"}
	require.NoError(t, p.Validate())
	require.NoError(t, f.repos.Page.Create(p))
	return p
}

func (f *fixture) reload(t *testing.T, id uint64) *models.Category {
	t.Helper()
	c, err := f.repos.Category.GetByID(id)
	require.NoError(t, err)
	return c
}

// snapshot captures every row the deactivation policy may touch.
type snapshot struct {
	Categories []models.Category
	News       []models.News
	Pages      []models.Page
}

func (f *fixture) snapshot(t *testing.T) snapshot {
	t.Helper()
	var s snapshot
	require.NoError(t, f.db.Order("id").Find(&s.Categories).Error)
	require.NoError(t, f.db.Order("id").Find(&s.News).Error)
	require.NoError(t, f.db.Order("id").Find(&s.Pages).Error)
	return s
}

func (f *fixture) setParent(t *testing.T, id uint64, parentID uint64) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Category{}).Where("id = ?", id).Update("parent_id", parentID).Error)
}

func ptr[T any](v T) *T {
	return &v
}
