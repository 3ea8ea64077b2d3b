package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/testdb"
	"github.com/medisite/cms/internal/pkg/usercontext"
)

type apiFixture struct {
	app   *fiber.App
	repos *repository.Repositories
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	repos := repository.NewRepositories(testdb.New(t))
	ctrl := NewAPICategoryController(category.NewService(repos, nil, nil), nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{Username: "editor", IsLoggedIn: true, IsAdmin: true})
		return c.Next()
	})
	app.Get("/categories", ctrl.HandleList)
	app.Get("/categories/tree", ctrl.HandleTree)
	app.Get("/categories/:id", ctrl.HandleGet)
	app.Get("/categories/:id/dependencies", ctrl.HandleDependencies)
	app.Post("/categories", ctrl.HandleCreate)
	app.Put("/categories/:id", ctrl.HandleUpdate)
	app.Delete("/categories/:id", ctrl.HandleDelete)
	return &apiFixture{app: app, repos: repos}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (f *apiFixture) seed(t *testing.T, slug string, parentID *uint64) *models.Category {
	t.Helper()
	c := &models.Category{Name: slug, Slug: slug, ParentID: parentID, IsActive: true}
	require.NoError(t, f.repos.Category.Create(c))
	return c
}

func TestAPICreateAndGet(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, http.MethodPost, "/categories", map[string]interface{}{
		"name": "Radiology",
		"slug": "radiology",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "radiology", data["slug"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, "editor", data["created_by"])

	status, body = f.do(t, http.MethodGet, "/categories/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Radiology", body["data"].(map[string]interface{})["name"])
}

func TestAPICreateValidation(t *testing.T) {
	f := newAPIFixture(t)

	status, body := f.do(t, http.MethodPost, "/categories", map[string]interface{}{"name": "", "slug": "Bad Slug"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "name is required")
}

func TestAPICreateDuplicateSlug(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "oncology", nil)

	status, body := f.do(t, http.MethodPost, "/categories", map[string]interface{}{"name": "Oncology", "slug": "oncology"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, body["success"])
}

func TestAPIUpdateCascade(t *testing.T) {
	f := newAPIFixture(t)
	a := f.seed(t, "a", nil)
	b := f.seed(t, "b", &a.ID)
	require.NoError(t, f.repos.News.Create(&models.News{CategoryID: b.ID, Title: "Live", Slug: "live", Status: models.NewsStatusPublish}))

	status, body := f.do(t, http.MethodPut, "/categories/1", map[string]interface{}{
		"name":      "a",
		"slug":      "a",
		"is_active": false,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["deactivatedCategories"])
	assert.EqualValues(t, 1, body["affectedArticles"])
	assert.EqualValues(t, 0, body["affectedPages"])
	report := body["dependencyReport"].([]interface{})
	require.Len(t, report, 1)
	assert.EqualValues(t, b.ID, report[0].(map[string]interface{})["categoryId"])
}

func TestAPIUpdateStrategyErrors(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "a", nil)

	status, body := f.do(t, http.MethodPut, "/categories/1", map[string]interface{}{
		"name": "a", "slug": "a", "is_active": false, "strategy": "explode",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["error"], "unknown deactivation strategy")

	status, _ = f.do(t, http.MethodPut, "/categories/1", map[string]interface{}{
		"name": "a", "slug": "a", "is_active": false, "strategy": "migrate", "migrate_target_id": 99,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = f.do(t, http.MethodPut, "/categories/42", map[string]interface{}{"name": "x", "slug": "x"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAPIDelete(t *testing.T) {
	f := newAPIFixture(t)
	a := f.seed(t, "a", nil)
	f.seed(t, "b", &a.ID)

	status, body := f.do(t, http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "category has sub-categories: 1 sub-categories", body["error"])

	status, body = f.do(t, http.MethodDelete, "/categories/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = f.do(t, http.MethodDelete, "/categories/2", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = f.do(t, http.MethodDelete, "/categories/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAPIListTreeAndDependencies(t *testing.T) {
	f := newAPIFixture(t)
	a := f.seed(t, "a", nil)
	b := f.seed(t, "b", &a.ID)
	require.NoError(t, f.repos.Page.Create(&models.Page{CategoryID: b.ID, Title: "About", Slug: "about", IsPublished: true}))

	status, body := f.do(t, http.MethodGet, "/categories?active=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)

	status, body = f.do(t, http.MethodGet, "/categories/tree", nil)
	require.Equal(t, fiber.StatusOK, status)
	roots := body["data"].([]interface{})
	require.Len(t, roots, 1)
	assert.Len(t, roots[0].(map[string]interface{})["children"], 1)

	status, body = f.do(t, http.MethodGet, "/categories/1/dependencies", nil)
	require.Equal(t, fiber.StatusOK, status)
	report := body["dependencyReport"].([]interface{})
	require.Len(t, report, 1)
	assert.EqualValues(t, 1, report[0].(map[string]interface{})["pageCount"])
}
