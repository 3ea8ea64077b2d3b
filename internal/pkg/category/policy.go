package category

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/medisite/cms/app/repository"
)

// Deactivate applies strategy to parentID and all of its descendants. It
// must run inside a transaction: an error leaves the caller responsible for
// rolling back whatever was written before it.
//
// The dependency report is taken before any write, so it shows what the
// strategy is about to touch.
func Deactivate(tx *repository.Repositories, parentID uint64, strategy Strategy, actor Actor, now time.Time) (*StrategyResult, error) {
	if strategy == nil {
		strategy = DefaultStrategy()
	}

	ids, err := branch(tx.Category, parentID)
	if err != nil {
		return nil, err
	}
	report, err := Inspect(tx, ids)
	if err != nil {
		return nil, err
	}

	result := &StrategyResult{
		Strategy:    strategy.Name(),
		ParentID:    parentID,
		CategoryIDs: ids,
		Report:      report,
	}

	switch s := strategy.(type) {
	case CascadeDeactivate:
		err = cascadeDeactivate(tx, ids, actor, now, result)
	case MigrateThenDeactivate:
		err = migrateThenDeactivate(tx, ids, s.TargetID, actor, now, result)
	case DeactivateOnly:
		err = deactivateCategories(tx, ids, actor, now, result)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func deactivateCategories(tx *repository.Repositories, ids []uint64, actor Actor, now time.Time, result *StrategyResult) error {
	n, err := tx.Category.DeactivateMany(ids, actor.String(), now)
	if err != nil {
		return fmt.Errorf("deactivate categories: %w", err)
	}
	result.DeactivatedCategories = n
	return nil
}

func cascadeDeactivate(tx *repository.Repositories, ids []uint64, actor Actor, now time.Time, result *StrategyResult) error {
	if err := deactivateCategories(tx, ids, actor, now, result); err != nil {
		return err
	}

	articles, err := tx.News.UnpublishByCategoryIDs(ids, actor.String(), now)
	if err != nil {
		return fmt.Errorf("unpublish articles: %w", err)
	}
	pages, err := tx.Page.UnpublishByCategoryIDs(ids, actor.String(), now)
	if err != nil {
		return fmt.Errorf("unpublish pages: %w", err)
	}

	result.AffectedArticles = articles
	result.AffectedPages = pages
	return nil
}

func migrateThenDeactivate(tx *repository.Repositories, ids []uint64, targetID uint64, actor Actor, now time.Time, result *StrategyResult) error {
	// every precondition is checked before the first write
	if err := checkMigrationTarget(tx, ids, targetID); err != nil {
		return err
	}

	articles, err := tx.News.ReassignCategory(ids, targetID, actor.String(), now)
	if err != nil {
		return fmt.Errorf("move articles: %w", err)
	}
	pages, err := tx.Page.ReassignCategory(ids, targetID, actor.String(), now)
	if err != nil {
		return fmt.Errorf("move pages: %w", err)
	}
	if err := deactivateCategories(tx, ids, actor, now, result); err != nil {
		return err
	}

	result.AffectedArticles = articles
	result.AffectedPages = pages
	result.MigratedTo = &targetID
	return nil
}

func checkMigrationTarget(tx *repository.Repositories, branchIDs []uint64, targetID uint64) error {
	if targetID == 0 {
		return ErrMigrateTargetMissing
	}
	for _, id := range branchIDs {
		if id == targetID {
			return fmt.Errorf("%w: %d", ErrMigrateTargetInBranch, targetID)
		}
	}

	target, err := tx.Category.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrMigrateTargetNotFound, targetID)
		}
		return fmt.Errorf("load target category: %w", err)
	}
	if !target.IsActive {
		return fmt.Errorf("%w: %q", ErrMigrateTargetInactive, target.Name)
	}
	return nil
}
