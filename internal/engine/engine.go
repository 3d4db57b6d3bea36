// Package engine classifies Finanzguru transaction rows into income sources
// and a hierarchical expense category tree, and assembles the result into a
// single Sankey flow graph: income nodes → root → issue categories →
// sub-categories.
//
// The engine is pure: it reads an already-parsed transaction table, performs
// no I/O and no logging, and surfaces every error to the caller. One Parse
// call owns all of its intermediate state, so concurrent calls on the same
// engine are safe as long as the table is not mutated underneath it.
package engine

import (
	"github.com/geldfluss/sankey/internal/config"
	"github.com/geldfluss/sankey/internal/domain"
	"github.com/geldfluss/sankey/internal/frame"
)

// Engine aggregates transaction tables into flow graphs according to a
// fixed configuration.
type Engine struct {
	hierarchy     *config.IssueCategory
	accounts      []config.AccountSource
	incomeFilters []frame.Filter
	issueFilters  []frame.Filter

	yearColumn   string
	monthColumn  string
	amountColumn string

	incomeNodeName    string
	otherIncomeName   string
	notUsedIncomeName string
}

// New creates an engine from a loaded configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		hierarchy:         cfg.IssueHierarchy,
		accounts:          cfg.IncomeAccounts,
		incomeFilters:     cfg.IncomeFilters,
		issueFilters:      cfg.IssueFilters,
		yearColumn:        cfg.YearColumn,
		monthColumn:       cfg.MonthColumn,
		amountColumn:      cfg.AmountColumn,
		incomeNodeName:    cfg.IncomeNodeName,
		otherIncomeName:   cfg.OtherIncomeName,
		notUsedIncomeName: cfg.NotUsedIncomeName,
	}
}

// Parse selects the rows of the requested period, aggregates income and
// issue nodes and returns the assembled root. month may be frame.WholeYear
// (13) to select the whole year; issueDepth limits how many hierarchy
// levels are expanded and must be within [1, hierarchy depth].
//
// A period matching zero rows yields all-zero sums and an empty issue tree;
// that is a valid result, not an error.
func (e *Engine) Parse(table *frame.Frame, year, month, issueDepth int) (*domain.RootNode, error) {
	if issueDepth < 1 {
		return nil, configErrorf("issue_depth must be greater than 0")
	}
	if maxDepth := e.hierarchy.Depth(); issueDepth > maxDepth {
		return nil, configErrorf("issue_depth must be less than or equal to %d", maxDepth)
	}
	if month != frame.WholeYear && e.monthColumn == "" {
		return nil, configErrorf("analysis_month_column_name must be set when a month is requested")
	}

	period := table.SelectPeriod(e.yearColumn, e.monthColumn, year, month)

	root := domain.NewRootNode(e.incomeNodeName)

	incomes, err := e.incomeNodes(period)
	if err != nil {
		return nil, err
	}
	root.AddIncomes(incomes)

	issues, err := e.issueNodes(period, issueDepth)
	if err != nil {
		return nil, err
	}
	root.AddIssues(issues)

	// Income not absorbed by any issue category becomes one extra leaf
	// directly under the issues group. Computed top-level only: every
	// top-level issue amount already covers its full subtree.
	if unused := root.IncomeAmount() - root.IssuesAmount(); unused > 0 {
		root.AddIssue(domain.NewNode(unused, e.notUsedIncomeName))
	}

	return root, nil
}
