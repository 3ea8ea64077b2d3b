package category

import (
	"fmt"

	"github.com/medisite/cms/app/repository"
)

// Inspect counts the news articles and pages filed under each of the given
// categories. Only categories with at least one dependent are reported, in
// the order of ids. It never writes.
func Inspect(repos *repository.Repositories, ids []uint64) ([]DependencyEntry, error) {
	report := make([]DependencyEntry, 0)
	if len(ids) == 0 {
		return report, nil
	}

	articles, err := repos.News.CountByCategoryIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	pages, err := repos.Page.CountByCategoryIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}

	withDependents := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if articles[id]+pages[id] > 0 {
			withDependents = append(withDependents, id)
		}
	}
	if len(withDependents) == 0 {
		return report, nil
	}

	categories, err := repos.Category.GetByIDs(withDependents)
	if err != nil {
		return nil, fmt.Errorf("load category names: %w", err)
	}
	names := make(map[uint64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	for _, id := range withDependents {
		report = append(report, DependencyEntry{
			CategoryID:   id,
			CategoryName: names[id],
			ArticleCount: articles[id],
			PageCount:    pages[id],
		})
	}
	return report, nil
}

// totals sums the counts of a report.
func totals(report []DependencyEntry) (articles, pages int64) {
	for _, e := range report {
		articles += e.ArticleCount
		pages += e.PageCount
	}
	return articles, pages
}
