package validate

import (
	"math"
	"testing"

	"github.com/geldfluss/sankey/internal/domain"
)

func validGraph() *domain.Graph {
	return &domain.Graph{
		Title: "Money flow 2024-03",
		Nodes: []domain.GraphNode{
			{ID: "salary", Label: "Salary", Value: 2500},
			{ID: "income", Label: "Income", Value: 2500},
			{ID: "groceries", Label: "Groceries", Value: 300},
		},
		Links: []domain.Link{
			{Source: 0, Target: 1, Value: 2500},
			{Source: 1, Target: 2, Value: 300},
		},
	}
}

func TestValidateGraph_Valid(t *testing.T) {
	result := ValidateGraph(validGraph())
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateGraph_Nil(t *testing.T) {
	result := ValidateGraph(nil)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestValidateGraph_LinkIndexOutOfRange(t *testing.T) {
	g := validGraph()
	g.Links = append(g.Links, domain.Link{Source: 0, Target: 99, Value: 10})

	result := ValidateGraph(g)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0].Entity != "link" || result.Errors[0].Field != "Target" {
		t.Errorf("unexpected error: %+v", result.Errors[0])
	}
}

func TestValidateGraph_SelfLink(t *testing.T) {
	g := validGraph()
	g.Links = append(g.Links, domain.Link{Source: 1, Target: 1, Value: 10})

	result := ValidateGraph(g)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
}

func TestValidateGraph_DuplicateNodeID(t *testing.T) {
	g := validGraph()
	g.Nodes[2].ID = "salary"

	result := ValidateGraph(g)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Errors[0].ID != "salary" {
		t.Errorf("unexpected error: %+v", result.Errors[0])
	}
}

func TestValidateGraph_NonFiniteValue(t *testing.T) {
	g := validGraph()
	g.Nodes[0].Value = math.NaN()

	result := ValidateGraph(g)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
}

func TestValidateGraph_NegativeValueWarns(t *testing.T) {
	g := validGraph()
	g.Nodes[2].Value = -12.5

	result := ValidateGraph(g)
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	if result.Warnings[0].Entity != "node" {
		t.Errorf("unexpected warning: %+v", result.Warnings[0])
	}
}

func TestValidateGraph_IsolatedNodeWarns(t *testing.T) {
	g := validGraph()
	g.Nodes = append(g.Nodes, domain.GraphNode{ID: "stray", Label: "Stray", Value: 1})

	result := ValidateGraph(g)
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if w.ID == "stray" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected isolated-node warning, got %v", result.Warnings)
	}
}

func TestValidateGraph_SingleNodeGraphIsFine(t *testing.T) {
	g := &domain.Graph{
		Title: "Money flow 2024 (whole year)",
		Nodes: []domain.GraphNode{{ID: "income", Label: "Income", Value: 0}},
	}

	result := ValidateGraph(g)
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}
