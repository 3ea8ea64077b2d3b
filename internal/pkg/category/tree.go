package category

import (
	"context"

	"github.com/medisite/cms/app/models"
)

// TreeNode is a category together with its sub-categories.
type TreeNode struct {
	models.Category
	SubCategories []*TreeNode `json:"children"`
}

// Tree returns the categories as a forest in display order. With activeOnly,
// categories below an inactive parent are left out; otherwise a category whose
// parent no longer exists is shown as a root.
func (s *Service) Tree(ctx context.Context, activeOnly bool) ([]*TreeNode, error) {
	categories, err := s.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return buildTree(categories, activeOnly), nil
}

func buildTree(categories []models.Category, dropOrphans bool) []*TreeNode {
	nodes := make(map[uint64]*TreeNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &TreeNode{Category: categories[i], SubCategories: []*TreeNode{}}
	}

	roots := make([]*TreeNode, 0)
	// categories arrive sorted, so appending keeps display order per level
	for i := range categories {
		node := nodes[categories[i].ID]
		if node.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		switch {
		case ok && parent != node:
			parent.SubCategories = append(parent.SubCategories, node)
		case !ok && !dropOrphans:
			roots = append(roots, node)
		}
	}
	return roots
}
