// Package validate checks an assembled flow graph for structural problems
// before it is written or served: dangling link indices, duplicate node IDs,
// non-finite weights. Warnings flag suspicious but renderable graphs, such
// as negative node values from over-filtered income.
package validate

import (
	"fmt"
	"math"

	"github.com/geldfluss/sankey/internal/domain"
)

// ValidationResult contains all errors and warnings found in a graph.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// ValidationError is a problem that makes the graph unrenderable.
type ValidationError struct {
	Entity  string // "graph", "node", "link"
	ID      string
	Field   string
	Message string
}

// ValidationWarning is a non-critical issue worth surfacing to the user.
type ValidationWarning struct {
	Entity  string
	ID      string
	Field   string
	Message string
}

// ValidateGraph checks node and link integrity. Returns a result with all
// errors and warnings found; an empty Errors slice means the graph is
// structurally sound.
func ValidateGraph(g *domain.Graph) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}

	if g == nil {
		result.Errors = append(result.Errors, ValidationError{
			Entity:  "graph",
			Field:   "graph",
			Message: "graph is nil",
		})
		return result
	}

	if g.Title == "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Entity:  "graph",
			Field:   "Title",
			Message: "graph has no title",
		})
	}

	seenIDs := make(map[string]bool, len(g.Nodes))
	linked := make(map[int]bool, len(g.Nodes))

	for i, node := range g.Nodes {
		if node.ID == "" {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "node",
				ID:      node.Label,
				Field:   "ID",
				Message: fmt.Sprintf("node %d has an empty ID", i),
			})
		} else if seenIDs[node.ID] {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "node",
				ID:      node.ID,
				Field:   "ID",
				Message: fmt.Sprintf("duplicate node ID: %s", node.ID),
			})
		}
		seenIDs[node.ID] = true

		if node.Label == "" {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "node",
				ID:      node.ID,
				Field:   "Label",
				Message: fmt.Sprintf("node %d has an empty label", i),
			})
		}
		if math.IsNaN(node.Value) || math.IsInf(node.Value, 0) {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "node",
				ID:      node.ID,
				Field:   "Value",
				Message: fmt.Sprintf("node %q has a non-finite value", node.Label),
			})
		}
		if node.Value < 0 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Entity:  "node",
				ID:      node.ID,
				Field:   "Value",
				Message: fmt.Sprintf("node %q has a negative value %.2f (income filters may overlap the residual)", node.Label, node.Value),
			})
		}
	}

	for i, link := range g.Links {
		if link.Source < 0 || link.Source >= len(g.Nodes) {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "link",
				ID:      fmt.Sprintf("%d", i),
				Field:   "Source",
				Message: fmt.Sprintf("link %d source index %d out of range [0,%d)", i, link.Source, len(g.Nodes)),
			})
			continue
		}
		if link.Target < 0 || link.Target >= len(g.Nodes) {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "link",
				ID:      fmt.Sprintf("%d", i),
				Field:   "Target",
				Message: fmt.Sprintf("link %d target index %d out of range [0,%d)", i, link.Target, len(g.Nodes)),
			})
			continue
		}
		if link.Source == link.Target {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "link",
				ID:      fmt.Sprintf("%d", i),
				Field:   "Target",
				Message: fmt.Sprintf("link %d connects node %d to itself", i, link.Source),
			})
		}
		if math.IsNaN(link.Value) || math.IsInf(link.Value, 0) {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "link",
				ID:      fmt.Sprintf("%d", i),
				Field:   "Value",
				Message: fmt.Sprintf("link %d has a non-finite value", i),
			})
		}
		if link.Value == 0 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Entity:  "link",
				ID:      fmt.Sprintf("%d", i),
				Field:   "Value",
				Message: fmt.Sprintf("link %d carries zero flow", i),
			})
		}
		linked[link.Source] = true
		linked[link.Target] = true
	}

	// Isolated nodes render as floating boxes with no flow.
	if len(g.Nodes) > 1 {
		for i, node := range g.Nodes {
			if !linked[i] {
				result.Warnings = append(result.Warnings, ValidationWarning{
					Entity:  "node",
					ID:      node.ID,
					Field:   "links",
					Message: fmt.Sprintf("node %q is not connected to any link", node.Label),
				})
			}
		}
	}

	return result
}
