package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/cache"
	"github.com/medisite/cms/internal/pkg/catctl"
	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/database"
	"github.com/medisite/cms/internal/pkg/env"
	applog "github.com/medisite/cms/internal/pkg/logger"
	"github.com/medisite/cms/internal/pkg/revalidate"
	"github.com/medisite/cms/internal/pkg/seed"
)

// session holds the connections opened for one command invocation.
type session struct {
	db    *gorm.DB
	repos *repository.Repositories
	svc   *category.Service
	log   *zap.Logger
}

var current *session

func openSession(cmd *cobra.Command, args []string) error {
	// a failed command skips PersistentPostRunE
	if err := closeSession(cmd, args); err != nil {
		return err
	}

	log, err := applog.New()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	driver := env.GetEnv("DB_DRIVER", database.DriverMySQL)
	db, err := database.Open(driver, database.DSN(driver))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if env.GetEnvBool("DB_AUTOMIGRATE", driver == database.DriverSQLite) {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	var notifier revalidate.Notifier = revalidate.Nop{}
	if cache.Available(time.Second) {
		notifier = revalidate.NewRedisNotifier(cache.GetClient(), log)
	} else {
		log.Debug("redis unavailable, cache revalidation disabled")
	}

	repos := repository.NewRepositories(db)
	current = &session{
		db:    db,
		repos: repos,
		svc:   category.NewService(repos, notifier, log),
		log:   log,
	}
	return nil
}

func closeSession(_ *cobra.Command, _ []string) error {
	if current == nil {
		return nil
	}
	s := current
	current = nil
	_ = s.log.Sync()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func actor() category.Actor {
	return category.Actor{Name: actorName}
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid category id %q", arg)
	}
	return id, nil
}

// inputFrom copies the editable fields of c so a single field can be changed.
func inputFrom(c *models.Category, active bool) category.CategoryInput {
	return category.CategoryInput{
		Name:         c.Name,
		Slug:         c.Slug,
		Note:         c.Note,
		ParentID:     c.ParentID,
		DisplayOrder: c.DisplayOrder,
		ImageURL:     c.ImageURL,
		IsMainMenu:   c.IsMainMenu,
		IsActive:     &active,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	categories, err := current.svc.List(cmd.Context(), activeOnly)
	if err != nil {
		return err
	}
	return catctl.Categories(cmd.OutOrStdout(), categories)
}

func runTree(cmd *cobra.Command, _ []string) error {
	roots, err := current.svc.Tree(cmd.Context(), activeOnly)
	if err != nil {
		return err
	}
	return catctl.Tree(cmd.OutOrStdout(), roots)
}

func runDescendants(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ids, err := current.svc.Descendants(cmd.Context(), id)
	if err != nil {
		return err
	}
	return catctl.IDs(cmd.OutOrStdout(), ids)
}

func runInspect(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	preview, err := current.svc.PreviewDeactivation(cmd.Context(), id)
	if err != nil {
		return err
	}
	return catctl.Preview(cmd.OutOrStdout(), preview)
}

func runDeactivate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	strategy, err := category.ParseStrategy(strategyName, migrateTarget)
	if err != nil {
		return err
	}
	if dryRun {
		return runInspect(cmd, args)
	}
	return setActive(cmd, id, false, strategy)
}

func runActivate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return setActive(cmd, id, true, nil)
}

func setActive(cmd *cobra.Command, id uint64, active bool, strategy category.Strategy) error {
	ctx := cmd.Context()
	c, err := current.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.IsActive == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return catctl.Warn(cmd.OutOrStdout(), "category %d is already %s", id, state)
	}

	result, err := current.svc.Update(ctx, actor(), id, inputFrom(c, active), strategy)
	if err != nil {
		return err
	}
	return catctl.Result(cmd.OutOrStdout(), result)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := current.svc.Delete(cmd.Context(), actor(), id); err != nil {
		return err
	}
	return catctl.Success(cmd.OutOrStdout(), "Category %d deleted", id)
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixture, err := seed.LoadFile(args[0])
	if err != nil {
		return err
	}
	seeder := seed.NewSeeder(current.svc, current.repos, actor(), current.log)
	sum, err := seeder.Apply(cmd.Context(), fixture)
	if err != nil {
		return err
	}
	return catctl.Success(cmd.OutOrStdout(), "Seeded %d categories, %d articles and %d pages",
		sum.Categories, sum.News, sum.Pages)
}
