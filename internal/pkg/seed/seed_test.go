package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/testdb"
)

const hospitalFixture = `
categories:
  - name: Services
    slug: services
    main_menu: true
    children:
      - name: Cardiology
        slug: cardiology
        display_order: 1
        news:
          - title: New cath lab
            slug: new-cath-lab
            status: publish
          - title: Heart week
            slug: heart-week
        pages:
          - title: Opening hours
            slug: cardiology-hours
            published: true
      - name: Archive
        slug: archive
        active: false
  - name: About
    slug: about
`

func newSeeder(t *testing.T) (*Seeder, *repository.Repositories) {
	t.Helper()
	seeder, repos, _ := newSeederWithDB(t)
	return seeder, repos
}

func newSeederWithDB(t *testing.T) (*Seeder, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	repos := repository.NewRepositories(db)
	svc := category.NewService(repos, nil, nil)
	return NewSeeder(svc, repos, category.Actor{Name: "seeder"}, nil), repos, db
}

type requestIDKey struct{}

func TestApplyPassesContextToContentWrites(t *testing.T) {
	seeder, _, db := newSeederWithDB(t)

	seen := map[string]interface{}{}
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("test:record_context", func(tx *gorm.DB) {
			if tx.Statement.Table == "news" || tx.Statement.Table == "pages" {
				seen[tx.Statement.Table] = tx.Statement.Context.Value(requestIDKey{})
			}
		}))

	f, err := Load(strings.NewReader(hospitalFixture))
	require.NoError(t, err)
	ctx := context.WithValue(context.Background(), requestIDKey{}, "seed-42")
	_, err = seeder.Apply(ctx, f)
	require.NoError(t, err)

	assert.Equal(t, "seed-42", seen["news"])
	assert.Equal(t, "seed-42", seen["pages"])
}

func TestLoad(t *testing.T) {
	f, err := Load(strings.NewReader(hospitalFixture))
	require.NoError(t, err)
	require.Len(t, f.Categories, 2)

	services := f.Categories[0]
	assert.True(t, services.MainMenu)
	assert.Nil(t, services.Active)
	require.Len(t, services.Children, 2)
	assert.Len(t, services.Children[0].News, 2)
	require.NotNil(t, services.Children[1].Active)
	assert.False(t, *services.Children[1].Active)
}

func TestLoadEmpty(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Categories)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("categories:\n  - name: X\n    colour: red\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	seeder, repos := newSeeder(t)
	f, err := Load(strings.NewReader(hospitalFixture))
	require.NoError(t, err)

	sum, err := seeder.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Summary{Categories: 4, News: 2, Pages: 1}, sum)

	all, err := repos.Category.List(false)
	require.NoError(t, err)
	bySlug := make(map[string]models.Category, len(all))
	for _, c := range all {
		bySlug[c.Slug] = c
	}

	services := bySlug["services"]
	cardiology := bySlug["cardiology"]
	require.NotNil(t, cardiology.ParentID)
	assert.Equal(t, services.ID, *cardiology.ParentID)
	assert.Nil(t, bySlug["about"].ParentID)
	assert.False(t, bySlug["archive"].IsActive)
	assert.True(t, services.IsActive)
	assert.Equal(t, "seeder", services.CreatedBy)

	news, err := repos.News.GetByCategoryIDs([]uint64{cardiology.ID})
	require.NoError(t, err)
	require.Len(t, news, 2)
	statuses := map[string]string{}
	for _, n := range news {
		statuses[n.Slug] = n.Status
	}
	assert.Equal(t, models.NewsStatusPublish, statuses["new-cath-lab"])
	assert.Equal(t, models.NewsStatusDraft, statuses["heart-week"])
}

func TestApplyStopsOnInvalidCategory(t *testing.T) {
	seeder, repos := newSeeder(t)
	f, err := Load(strings.NewReader(`
categories:
  - name: Wards
    slug: wards
    children:
      - name: Bad
        slug: "Not A Slug"
`))
	require.NoError(t, err)

	sum, err := seeder.Apply(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, category.ErrValidation)
	assert.Equal(t, 1, sum.Categories)

	all, err := repos.Category.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestApplyRejectsDuplicateSlug(t *testing.T) {
	seeder, _ := newSeeder(t)
	f, err := Load(strings.NewReader(hospitalFixture))
	require.NoError(t, err)

	_, err = seeder.Apply(context.Background(), f)
	require.NoError(t, err)

	_, err = seeder.Apply(context.Background(), f)
	assert.ErrorIs(t, err, category.ErrSlugTaken)
}
