package category

import (
	"fmt"

	"github.com/medisite/cms/app/repository"
)

// Descendants returns the IDs of every category below rootID, at any depth,
// in breadth-first order. rootID itself is never part of the result.
//
// Each tree level costs one query. Reaching an ID twice can only happen when
// the stored parent links form a loop through rootID; that is reported as
// ErrCycleDetected instead of walking forever.
func Descendants(repo repository.CategoryRepository, rootID uint64) ([]uint64, error) {
	visited := map[uint64]struct{}{rootID: {}}
	result := make([]uint64, 0)
	frontier := []uint64{rootID}

	for depth := 1; len(frontier) > 0; depth++ {
		children, err := repo.ChildIDs(frontier)
		if err != nil {
			return nil, fmt.Errorf("load children at depth %d: %w", depth, err)
		}

		next := make([]uint64, 0, len(children))
		for _, id := range children {
			if _, seen := visited[id]; seen {
				return nil, fmt.Errorf("%w: category %d reached twice below category %d", ErrCycleDetected, id, rootID)
			}
			visited[id] = struct{}{}
			result = append(result, id)
			next = append(next, id)
		}
		frontier = next
	}
	return result, nil
}

// branch returns rootID followed by all of its descendants.
func branch(repo repository.CategoryRepository, rootID uint64) ([]uint64, error) {
	descendants, err := Descendants(repo, rootID)
	if err != nil {
		return nil, err
	}
	return append([]uint64{rootID}, descendants...), nil
}
