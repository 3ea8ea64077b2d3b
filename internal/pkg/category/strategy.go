package category

import (
	"fmt"
	"strings"
)

const (
	StrategyCascade        = "cascade"
	StrategyMigrate        = "migrate"
	StrategyCategoriesOnly = "categories_only"
)

// Strategy decides what happens to the content of a category branch that is
// being deactivated. The set of variants is closed: CascadeDeactivate,
// MigrateThenDeactivate and DeactivateOnly.
type Strategy interface {
	Name() string
	isStrategy()
}

// CascadeDeactivate deactivates the branch and unpublishes all of its news
// articles and pages.
type CascadeDeactivate struct{}

// MigrateThenDeactivate moves all news articles and pages of the branch to
// TargetID, keeping their publish state, and then deactivates the branch.
type MigrateThenDeactivate struct {
	TargetID uint64
}

// DeactivateOnly deactivates the branch and leaves its content untouched.
type DeactivateOnly struct{}

func (CascadeDeactivate) Name() string     { return StrategyCascade }
func (MigrateThenDeactivate) Name() string { return StrategyMigrate }
func (DeactivateOnly) Name() string        { return StrategyCategoriesOnly }

func (CascadeDeactivate) isStrategy()     {}
func (MigrateThenDeactivate) isStrategy() {}
func (DeactivateOnly) isStrategy()        {}

// DefaultStrategy is used when the caller does not choose one. Cascading is
// the policy choice for the default: a deactivated branch must not leave
// published content reachable by direct URL.
func DefaultStrategy() Strategy {
	return CascadeDeactivate{}
}

// MigrateTo builds a MigrateThenDeactivate strategy, refusing a missing target.
func MigrateTo(targetID uint64) (Strategy, error) {
	if targetID == 0 {
		return nil, ErrMigrateTargetMissing
	}
	return MigrateThenDeactivate{TargetID: targetID}, nil
}

// ParseStrategy maps the wire name of a strategy to its variant. An empty
// name selects the default.
func ParseStrategy(name string, targetID uint64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyCascade:
		return CascadeDeactivate{}, nil
	case StrategyMigrate:
		return MigrateTo(targetID)
	case StrategyCategoriesOnly:
		return DeactivateOnly{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
