package engine

import (
	"github.com/geldfluss/sankey/internal/domain"
	"github.com/geldfluss/sankey/internal/frame"
)

// incomeNodes builds one node per declared income filter, in
// account-then-filter declaration order, plus a residual "other income"
// node absorbing everything the declared filters did not capture.
func (e *Engine) incomeNodes(table *frame.Frame) ([]*domain.Node, error) {
	narrowed := table.SelectByFilters(e.incomeFilters)

	var nodes []*domain.Node
	for _, account := range e.accounts {
		for _, filter := range account.IncomeFilters {
			sum, err := narrowed.SumWhereContains(e.amountColumn, filter.Column, filter.Values)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, domain.NewNode(sum, filter.Label))
		}
	}

	// The residual is the total minus every declared node. Filters with
	// overlapping value substrings double-count rows, which can push the
	// residual negative; that is preserved as-is, not clamped, so the
	// reconciliation mismatch stays visible to the caller.
	other, err := narrowed.SumAbsolute(e.amountColumn)
	if err != nil {
		return nil, err
	}
	for _, node := range nodes {
		other -= node.Amount()
	}
	nodes = append(nodes, domain.NewNode(other, e.otherIncomeName))

	return nodes, nil
}
