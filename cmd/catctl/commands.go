package main

import (
	"github.com/spf13/cobra"
)

var (
	actorName     string
	activeOnly    bool
	strategyName  string
	migrateTarget uint64
	dryRun        bool

	rootCmd = &cobra.Command{
		Use:   "catctl",
		Short: "Inspect and maintain the hospital CMS category tree",
		Long: `catctl works directly on the CMS database configured through the
DB_* environment. Every change goes through the same service as the admin
API, so validation, deactivation strategies and cache revalidation apply.`,
		SilenceUsage:       true,
		PersistentPreRunE:  openSession,
		PersistentPostRunE: closeSession,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List categories ordered by display order and name",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	treeCmd = &cobra.Command{
		Use:   "tree",
		Short: "Print the category tree",
		Args:  cobra.NoArgs,
		RunE:  runTree,
	}
	descendantsCmd = &cobra.Command{
		Use:   "descendants [id]",
		Short: "Print the ids of every category below a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescendants,
	}
	inspectCmd = &cobra.Command{
		Use:   "inspect [id]",
		Short: "Show the articles and pages a deactivation would touch",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	deactivateCmd = &cobra.Command{
		Use:   "deactivate [id]",
		Short: "Deactivate a category and its branch",
		Long: `Deactivate a category together with all of its sub-categories.

Strategies:
  cascade          unpublish every article and page in the branch (default)
  migrate          move articles and pages to --target, then deactivate
  categories_only  deactivate categories and leave content untouched`,
		Args: cobra.ExactArgs(1),
		RunE: runDeactivate,
	}
	activateCmd = &cobra.Command{
		Use:   "activate [id]",
		Short: "Reactivate a single category",
		Args:  cobra.ExactArgs(1),
		RunE:  runActivate,
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a category without sub-categories, articles or pages",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	seedCmd = &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Create categories, articles and pages from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&actorName, "actor", "catctl", "name recorded as created_by/updated_by")

	listCmd.Flags().BoolVar(&activeOnly, "active", false, "only list active categories")
	treeCmd.Flags().BoolVar(&activeOnly, "active", false, "only show active categories")

	deactivateCmd.Flags().StringVar(&strategyName, "strategy", "cascade", "cascade, migrate or categories_only")
	deactivateCmd.Flags().Uint64Var(&migrateTarget, "target", 0, "target category for the migrate strategy")
	deactivateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only print the dependency report")

	rootCmd.AddCommand(listCmd, treeCmd, descendantsCmd, inspectCmd, deactivateCmd, activateCmd, deleteCmd, seedCmd)
}
