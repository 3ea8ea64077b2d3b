// Package catctl renders category data for the operator CLI.
package catctl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/medisite/cms/app/models"
	"github.com/medisite/cms/internal/pkg/category"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Categories writes a flat category table.
func Categories(w io.Writer, categories []models.Category) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "SLUG", "PARENT", "ACTIVE", "MENU").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range categories {
		parent := "-"
		if c.ParentID != nil {
			parent = strconv.FormatUint(*c.ParentID, 10)
		}
		t.Row(
			strconv.FormatUint(c.ID, 10),
			c.Name,
			c.Slug,
			parent,
			yesNo(c.IsActive),
			yesNo(c.IsMainMenu),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Tree writes the category forest.
func Tree(w io.Writer, roots []*category.TreeNode) error {
	if len(roots) == 0 {
		_, err := fmt.Fprintln(w, "no categories")
		return err
	}
	for _, root := range roots {
		if _, err := fmt.Fprintln(w, treeNode(root).String()); err != nil {
			return err
		}
	}
	return nil
}

func treeNode(n *category.TreeNode) *tree.Tree {
	t := tree.Root(nodeLabel(n))
	for _, child := range n.SubCategories {
		t.Child(treeNode(child))
	}
	return t
}

func nodeLabel(n *category.TreeNode) string {
	label := fmt.Sprintf("%s (#%d, %s)", n.Name, n.ID, n.Slug)
	if !n.IsActive {
		return inactiveStyle.Render(label + " [inactive]")
	}
	return label
}

// IDs writes one id per line.
func IDs(w io.Writer, ids []uint64) error {
	if len(ids) == 0 {
		_, err := fmt.Fprintln(w, "no descendants")
		return err
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "\n"))
	return err
}

// Preview writes what deactivating a category would touch.
func Preview(w io.Writer, p *category.DeactivationPreview) error {
	if _, err := fmt.Fprintf(w, "%s (#%d): %d categories in branch\n",
		p.Category.Name, p.Category.ID, len(p.CategoryIDs)); err != nil {
		return err
	}
	return Report(w, p.Report)
}

// Report writes a dependency report table.
func Report(w io.Writer, report []category.DependencyEntry) error {
	if len(report) == 0 {
		_, err := fmt.Fprintln(w, "no dependent articles or pages")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "NAME", "ARTICLES", "PAGES").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, e := range report {
		t.Row(
			strconv.FormatUint(e.CategoryID, 10),
			e.CategoryName,
			strconv.FormatInt(e.ArticleCount, 10),
			strconv.FormatInt(e.PageCount, 10),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Result writes the outcome of an update.
func Result(w io.Writer, r *category.UpdateResult) error {
	if _, err := fmt.Fprintln(w, successStyle.Render(r.Message)); err != nil {
		return err
	}
	if r.Deactivation == nil || len(r.Deactivation.Report) == 0 {
		return nil
	}
	return Report(w, r.Deactivation.Report)
}

// Success writes a highlighted one-line message.
func Success(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
	return err
}

// Warn writes a highlighted warning line.
func Warn(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf(format, args...)))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
