package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/metrics"
	"github.com/medisite/cms/internal/pkg/revalidate"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Service is the single entry point for changing categories. Every mutation
// runs in one transaction and, once committed, invalidates the cached views
// that show categories, news or pages.
type Service struct {
	repos    *repository.Repositories
	notifier revalidate.Notifier
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a category service. A nil notifier or logger disables
// invalidation or logging respectively.
func NewService(repos *repository.Repositories, notifier revalidate.Notifier, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = revalidate.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repos:    repos,
		notifier: notifier,
		log:      log.Named("category"),
		validate: newValidator(),
		now:      time.Now,
	}
}

// Create validates in and stores a new category. A missing IsActive means active.
func (s *Service) Create(ctx context.Context, actor Actor, in CategoryInput) (*models.Category, error) {
	in = normalizeInput(in)
	if err := s.validateInput(in); err != nil {
		return nil, s.finish(ctx, opCreate, 0, err)
	}

	category := &models.Category{
		Name:         in.Name,
		Slug:         in.Slug,
		Note:         in.Note,
		ParentID:     in.ParentID,
		DisplayOrder: in.DisplayOrder,
		ImageURL:     in.ImageURL,
		IsMainMenu:   in.IsMainMenu,
		IsActive:     true,
		CreatedBy:    actor.String(),
		UpdatedBy:    actor.String(),
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		taken, err := tx.Category.SlugExists(category.Slug)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrSlugTaken, category.Slug)
		}
		if category.ParentID != nil {
			if err := requireCategory(tx, *category.ParentID, ErrParentNotFound); err != nil {
				return err
			}
		}
		if err := tx.Category.Create(category); err != nil {
			return fmt.Errorf("create category: %w", translateStoreError(err))
		}
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, opCreate, 0, err)
	}

	s.log.Info("category created",
		zap.Uint64("id", category.ID),
		zap.String("slug", category.Slug),
		zap.String("actor", actor.String()))
	return category, s.finish(ctx, opCreate, category.ID, nil)
}

// Update replaces the editable fields of category id. When the update
// switches the category from active to inactive, strategy is applied to the
// whole branch before the fields are written; a nil strategy cascades.
// Reactivation only touches the category itself.
func (s *Service) Update(ctx context.Context, actor Actor, id uint64, in CategoryInput, strategy Strategy) (*UpdateResult, error) {
	in = normalizeInput(in)
	if err := s.validateInput(in); err != nil {
		return nil, s.finish(ctx, opUpdate, id, err)
	}
	if in.ParentID != nil && *in.ParentID == id {
		return nil, s.finish(ctx, opUpdate, id, fmt.Errorf("%w: category %d", ErrParentCycle, id))
	}
	if strategy == nil {
		strategy = DefaultStrategy()
	}

	result := &UpdateResult{Message: "Category updated successfully"}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		current, err := tx.Category.GetByID(id)
		if err != nil {
			return notFound(err, id)
		}

		taken, err := tx.Category.SlugExistsExceptID(in.Slug, id)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrSlugTaken, in.Slug)
		}

		if in.ParentID != nil && !sameParent(current.ParentID, in.ParentID) {
			if err := s.checkNewParent(tx, id, *in.ParentID); err != nil {
				return err
			}
		}

		nextActive := current.IsActive
		if in.IsActive != nil {
			nextActive = *in.IsActive
		}

		now := s.now()
		if current.IsActive && !nextActive {
			deactivation, err := Deactivate(tx, id, strategy, actor, now)
			if err != nil {
				return err
			}
			result.Deactivation = deactivation
			result.Message = deactivationMessage(deactivation)
		}

		fields := map[string]interface{}{
			"name":          in.Name,
			"slug":          in.Slug,
			"note":          nullable(in.Note),
			"parent_id":     nullable(in.ParentID),
			"display_order": nullable(in.DisplayOrder),
			"image_url":     nullable(in.ImageURL),
			"is_main_menu":  in.IsMainMenu,
			"is_active":     nextActive,
			"updated_by":    actor.String(),
			"updated_at":    now,
		}
		if err := tx.Category.UpdateFields(id, fields); err != nil {
			return fmt.Errorf("update category %d: %w", id, translateStoreError(err))
		}

		updated, err := tx.Category.GetByID(id)
		if err != nil {
			return fmt.Errorf("reload category %d: %w", id, err)
		}
		result.Category = updated
		return nil
	})
	if err != nil {
		return nil, s.finish(ctx, opUpdate, id, err)
	}

	if d := result.Deactivation; d != nil {
		metrics.ObserveDeactivation(d.Strategy, d.DeactivatedCategories, d.AffectedArticles, d.AffectedPages)
		s.log.Info("category branch deactivated",
			zap.Uint64("id", id),
			zap.String("strategy", d.Strategy),
			zap.Int64("categories", d.DeactivatedCategories),
			zap.Int64("articles", d.AffectedArticles),
			zap.Int64("pages", d.AffectedPages),
			zap.String("actor", actor.String()))
	} else {
		s.log.Info("category updated", zap.Uint64("id", id), zap.String("actor", actor.String()))
	}
	return result, s.finish(ctx, opUpdate, id, nil)
}

// Delete removes a category that has no sub-categories, news articles or
// pages. It never cascades.
func (s *Service) Delete(ctx context.Context, actor Actor, id uint64) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Category.GetByID(id); err != nil {
			return notFound(err, id)
		}

		children, err := tx.Category.CountChildren(id)
		if err != nil {
			return fmt.Errorf("count sub-categories: %w", err)
		}
		if children > 0 {
			return fmt.Errorf("%w: %d sub-categories", ErrHasChildren, children)
		}

		ids := []uint64{id}
		articles, err := tx.News.CountByCategoryIDs(ids)
		if err != nil {
			return fmt.Errorf("count articles: %w", err)
		}
		if n := articles[id]; n > 0 {
			return fmt.Errorf("%w: %d articles", ErrHasArticles, n)
		}
		pages, err := tx.Page.CountByCategoryIDs(ids)
		if err != nil {
			return fmt.Errorf("count pages: %w", err)
		}
		if n := pages[id]; n > 0 {
			return fmt.Errorf("%w: %d pages", ErrHasPages, n)
		}

		if err := tx.Category.Delete(id); err != nil {
			return fmt.Errorf("delete category %d: %w", id, notFound(err, id))
		}
		return nil
	})
	if err != nil {
		return s.finish(ctx, opDelete, id, err)
	}

	s.log.Info("category deleted", zap.Uint64("id", id), zap.String("actor", actor.String()))
	return s.finish(ctx, opDelete, id, nil)
}

// Get returns a single category.
func (s *Service) Get(ctx context.Context, id uint64) (*models.Category, error) {
	category, err := s.repos.WithContext(ctx).Category.GetByID(id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return category, nil
}

// List returns all categories in display order.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	categories, err := s.repos.WithContext(ctx).Category.List(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Descendants returns the IDs below category id.
func (s *Service) Descendants(ctx context.Context, id uint64) ([]uint64, error) {
	repos := s.repos.WithContext(ctx)
	if _, err := repos.Category.GetByID(id); err != nil {
		return nil, notFound(err, id)
	}
	return Descendants(repos.Category, id)
}

// PreviewDeactivation reports what deactivating category id would touch,
// without changing anything.
func (s *Service) PreviewDeactivation(ctx context.Context, id uint64) (*DeactivationPreview, error) {
	repos := s.repos.WithContext(ctx)
	category, err := repos.Category.GetByID(id)
	if err != nil {
		return nil, notFound(err, id)
	}
	ids, err := branch(repos.Category, id)
	if err != nil {
		return nil, err
	}
	report, err := Inspect(repos, ids)
	if err != nil {
		return nil, err
	}
	return &DeactivationPreview{Category: category, CategoryIDs: ids, Report: report}, nil
}

// finish records the outcome of a mutation and, on success, invalidates
// every view that depends on categories. It returns err unchanged.
func (s *Service) finish(ctx context.Context, operation string, id uint64, err error) error {
	switch {
	case err == nil:
		metrics.ObserveMutation(operation, metrics.OutcomeSuccess)
		s.notifier.Invalidate(ctx, revalidate.CategoryViews...)
	case IsRejection(err):
		metrics.ObserveMutation(operation, metrics.OutcomeRejected)
		s.log.Debug("category mutation rejected",
			zap.String("operation", operation), zap.Uint64("id", id), zap.Error(err))
	default:
		metrics.ObserveMutation(operation, metrics.OutcomeError)
		s.log.Error("category mutation failed",
			zap.String("operation", operation), zap.Uint64("id", id), zap.Error(err))
	}
	return err
}

func (s *Service) checkNewParent(tx *repository.Repositories, id, parentID uint64) error {
	if err := requireCategory(tx, parentID, ErrParentNotFound); err != nil {
		return err
	}
	below, err := Descendants(tx.Category, id)
	if err != nil {
		return err
	}
	for _, d := range below {
		if d == parentID {
			return fmt.Errorf("%w: %d is below %d", ErrParentCycle, parentID, id)
		}
	}
	return nil
}

func requireCategory(tx *repository.Repositories, id uint64, missing error) error {
	if _, err := tx.Category.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", missing, id)
		}
		return fmt.Errorf("load category %d: %w", id, err)
	}
	return nil
}

func notFound(err error, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return fmt.Errorf("load category %d: %w", id, err)
}

func translateStoreError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return err
}

func sameParent(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nullable turns a nil pointer into an untyped nil so gorm writes NULL.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func deactivationMessage(r *StrategyResult) string {
	switch r.Strategy {
	case StrategyMigrate:
		target := uint64(0)
		if r.MigratedTo != nil {
			target = *r.MigratedTo
		}
		return fmt.Sprintf("Category deactivated: %d categories deactivated, %d articles and %d pages moved to category %d",
			r.DeactivatedCategories, r.AffectedArticles, r.AffectedPages, target)
	case StrategyCategoriesOnly:
		return fmt.Sprintf("Category deactivated: %d categories deactivated, articles and pages left unchanged",
			r.DeactivatedCategories)
	default:
		return fmt.Sprintf("Category deactivated: %d categories deactivated, %d articles set to draft, %d pages unpublished",
			r.DeactivatedCategories, r.AffectedArticles, r.AffectedPages)
	}
}
