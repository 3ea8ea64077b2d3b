// Package seed loads category trees with their news and pages from YAML
// fixtures.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/category"
)

// Fixture is the root document of a seed file.
type Fixture struct {
	Categories []Category `yaml:"categories"`
}

// Category is one fixture node. Children are created below it.
type Category struct {
	Name         string     `yaml:"name"`
	Slug         string     `yaml:"slug"`
	Note         *string    `yaml:"note"`
	DisplayOrder *int       `yaml:"display_order"`
	ImageURL     *string    `yaml:"image_url"`
	MainMenu     bool       `yaml:"main_menu"`
	Active       *bool      `yaml:"active"`
	News         []News     `yaml:"news"`
	Pages        []Page     `yaml:"pages"`
	Children     []Category `yaml:"children"`
}

type News struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Content string `yaml:"content"`
	Status  string `yaml:"status"`
}

type Page struct {
	Title     string `yaml:"title"`
	Slug      string `yaml:"slug"`
	Content   string `yaml:"content"`
	Published bool   `yaml:"published"`
}

// Summary counts the rows created by Apply.
type Summary struct {
	Categories int `json:"categories"`
	News       int `json:"news"`
	Pages      int `json:"pages"`
}

// Load decodes a fixture. Unknown keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed fixture: %w", err)
	}
	defer file.Close()
	return Load(file)
}

// Seeder writes fixtures through the category service so every category
// passes the same validation as an API request.
type Seeder struct {
	svc   *category.Service
	repos *repository.Repositories
	actor category.Actor
	log   *zap.Logger
}

func NewSeeder(svc *category.Service, repos *repository.Repositories, actor category.Actor, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{svc: svc, repos: repos, actor: actor, log: log.Named("seed")}
}

// Apply creates the fixture top-down. Rows created before a failure are kept.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	for i := range f.Categories {
		if err := s.apply(ctx, &f.Categories[i], nil, &sum); err != nil {
			return sum, err
		}
	}
	s.log.Info("seed applied",
		zap.Int("categories", sum.Categories),
		zap.Int("news", sum.News),
		zap.Int("pages", sum.Pages))
	return sum, nil
}

func (s *Seeder) apply(ctx context.Context, node *Category, parentID *uint64, sum *Summary) error {
	created, err := s.svc.Create(ctx, s.actor, category.CategoryInput{
		Name:         node.Name,
		Slug:         node.Slug,
		Note:         node.Note,
		ParentID:     parentID,
		DisplayOrder: node.DisplayOrder,
		ImageURL:     node.ImageURL,
		IsMainMenu:   node.MainMenu,
		IsActive:     node.Active,
	})
	if err != nil {
		return fmt.Errorf("seed category %q: %w", node.Slug, err)
	}
	sum.Categories++
	repos := s.repos.WithContext(ctx)

	for _, n := range node.News {
		news := &models.News{
			CategoryID: created.ID,
			Title:      n.Title,
			Slug:       n.Slug,
			Content:    n.Content,
			Status:     n.Status,
			UpdatedBy:  s.actor.String(),
		}
		if news.Status == "" {
			news.Status = models.NewsStatusDraft
		}
		if err := news.Validate(); err != nil {
			return fmt.Errorf("seed news %q: %w", n.Slug, err)
		}
		if err := repos.News.Create(news); err != nil {
			return fmt.Errorf("seed news %q: %w", n.Slug, err)
		}
		sum.News++
	}

	for _, p := range node.Pages {
		page := &models.Page{
			CategoryID:  created.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			Content:     p.Content,
			IsPublished: p.Published,
			UpdatedBy:   s.actor.String(),
		}
		if err := page.Validate(); err != nil {
			return fmt.Errorf("seed page %q: %w", p.Slug, err)
		}
		if err := repos.Page.Create(page); err != nil {
			return fmt.Errorf("seed page %q: %w", p.Slug, err)
		}
		sum.Pages++
	}

	for i := range node.Children {
		if err := s.apply(ctx, &node.Children[i], &created.ID, sum); err != nil {
			return err
		}
	}
	return nil
}
