package category

import "errors"

var (
	ErrNotFound       = errors.New("category not found")
	ErrValidation     = errors.New("invalid category")
	ErrSlugTaken      = errors.New("a category with this slug already exists")
	ErrParentNotFound = errors.New("parent category not found")
	ErrParentCycle    = errors.New("a category cannot be moved below itself or one of its sub-categories")

	// Delete is never cascading; each dependency kind blocks it on its own.
	ErrHasChildren = errors.New("category has sub-categories")
	ErrHasArticles = errors.New("category has related articles")
	ErrHasPages    = errors.New("category has related pages")

	// ErrCycleDetected means the stored parent links loop back on themselves.
	ErrCycleDetected = errors.New("category tree contains a cycle")

	ErrUnknownStrategy       = errors.New("unknown deactivation strategy")
	ErrMigrateTargetMissing  = errors.New("a target category is required to migrate content")
	ErrMigrateTargetNotFound = errors.New("target category not found")
	ErrMigrateTargetInactive = errors.New("target category is not active")
	ErrMigrateTargetInBranch = errors.New("target category is part of the branch being deactivated")
)

var rejections = []error{
	ErrNotFound,
	ErrValidation,
	ErrSlugTaken,
	ErrParentNotFound,
	ErrParentCycle,
	ErrHasChildren,
	ErrHasArticles,
	ErrHasPages,
	ErrUnknownStrategy,
	ErrMigrateTargetMissing,
	ErrMigrateTargetNotFound,
	ErrMigrateTargetInactive,
	ErrMigrateTargetInBranch,
}

// IsRejection reports whether err is a refusal caused by the request or the
// current state of the data, as opposed to a store failure.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// IsDependencyBlock reports whether err is a delete refused because of dependents.
func IsDependencyBlock(err error) bool {
	return errors.Is(err, ErrHasChildren) || errors.Is(err, ErrHasArticles) || errors.Is(err, ErrHasPages)
}
