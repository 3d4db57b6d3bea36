package engine

import (
	"github.com/geldfluss/sankey/internal/config"
	"github.com/geldfluss/sankey/internal/domain"
	"github.com/geldfluss/sankey/internal/frame"
)

// issueNodes narrows the table by the configured issue filters and walks
// the category hierarchy. The used-label set is created fresh per call and
// shared across the whole recursion, so duplicate category values anywhere
// in the tree get disambiguated exactly once.
func (e *Engine) issueNodes(table *frame.Frame, issueDepth int) ([]*domain.Node, error) {
	narrowed := table.SelectByFilters(e.issueFilters)
	usedLabels := make(map[string]struct{})
	return e.buildIssueTree(narrowed, e.hierarchy, usedLabels, issueDepth)
}

// buildIssueTree recursively builds one hierarchy level. Each distinct value
// of the level's column (first-occurrence order) becomes a node whose amount
// covers every row containing that value; the rows are then narrowed by the
// same containment match and the next level recurses into them.
//
// A value that already appeared as a label elsewhere in the traversal is
// re-labeled with a single leading space: a flow renderer treats two nodes
// with identical labels as the same node, which would fold distinct
// categories into a spurious merge. The original value keeps driving the
// sub-filtering; only the display label changes.
func (e *Engine) buildIssueTree(table *frame.Frame, category *config.IssueCategory, usedLabels map[string]struct{}, remainingDepth int) ([]*domain.Node, error) {
	if category == nil || remainingDepth < 1 {
		return nil, nil
	}

	var nodes []*domain.Node
	for _, value := range table.DistinctValues(category.Column) {
		sum, err := table.SumWhereContains(e.amountColumn, category.Column, []string{value})
		if err != nil {
			return nil, err
		}

		label := value
		if _, taken := usedLabels[value]; taken {
			label = " " + value
		}
		node := domain.NewNode(sum, label)

		// Recorded before recursing: deeper levels and later siblings both
		// see the label as taken.
		usedLabels[label] = struct{}{}

		categoryRows := table.SelectContains(category.Column, value)
		children, err := e.buildIssueTree(categoryRows, category.Sub, usedLabels, remainingDepth-1)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			node.AddLinked(child)
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}
