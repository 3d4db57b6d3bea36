package domain

import "testing"

func TestRootNode_Amounts(t *testing.T) {
	root := NewRootNode("Income")
	root.AddIncomes([]*Node{NewNode(2500, "Salary"), NewNode(120.50, "Other income")})

	rent := NewNode(900, "Housing")
	rent.AddLinked(NewNode(750, "Rent"))
	rent.AddLinked(NewNode(150, "Utilities"))
	root.AddIssues([]*Node{rent, NewNode(300, "Groceries")})

	if got := root.IncomeAmount(); got != 2620.50 {
		t.Errorf("IncomeAmount() = %v, want 2620.50", got)
	}

	// Top-level only: the 750 and 150 sub-nodes are already contained in the
	// 900 of their parent and must not be counted again.
	if got := root.IssuesAmount(); got != 1200 {
		t.Errorf("IssuesAmount() = %v, want 1200", got)
	}
}

func TestNode_LinkedOrder(t *testing.T) {
	n := NewNode(10, "parent")
	n.AddLinked(NewNode(1, "a"))
	n.AddLinked(NewNode(2, "b"))
	n.AddLinked(NewNode(3, "c"))

	linked := n.Linked()
	if len(linked) != 3 {
		t.Fatalf("Linked() len = %d, want 3", len(linked))
	}
	for i, want := range []string{"a", "b", "c"} {
		if linked[i].Label() != want {
			t.Errorf("Linked()[%d].Label() = %q, want %q", i, linked[i].Label(), want)
		}
	}
}

func TestBuildGraph(t *testing.T) {
	root := NewRootNode("Income")
	root.AddIncomes([]*Node{NewNode(2000, "Salary")})
	housing := NewNode(900, "Housing")
	housing.AddLinked(NewNode(750, "Rent"))
	root.AddIssues([]*Node{housing})
	root.AddIssue(NewNode(1100, "Not used income"))

	g := BuildGraph(root, DiagramTitle(2024, 3))

	if g.Title != "Money flow 2024-03" {
		t.Errorf("Title = %q", g.Title)
	}
	// root, salary, housing, rent, not-used
	if len(g.Nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(g.Nodes))
	}
	if g.Nodes[0].Value != 2000 {
		t.Errorf("root value = %v, want income total 2000", g.Nodes[0].Value)
	}
	if len(g.Links) != 4 {
		t.Fatalf("links = %d, want 4", len(g.Links))
	}
	// Income links point into the root, issue links out of it.
	if g.Links[0].Target != 0 || g.Links[0].Source != 1 {
		t.Errorf("income link = %+v, want 1 -> 0", g.Links[0])
	}
	if g.Links[1].Source != 0 {
		t.Errorf("issue link source = %d, want 0", g.Links[1].Source)
	}
	// Rent hangs off housing, not off the root.
	if g.Links[2].Source != 2 || g.Links[2].Target != 3 {
		t.Errorf("sub-issue link = %+v, want 2 -> 3", g.Links[2])
	}
}

func TestBuildGraph_NumbersRepeatedSlugs(t *testing.T) {
	// A category value at three or more tree positions yields one plain
	// label and two space-rewritten ones; all three must get distinct IDs.
	root := NewRootNode("Income")
	root.AddIncomes([]*Node{NewNode(3000, "Salary")})
	wohnen := NewNode(900, "Wohnen")
	wohnen.AddLinked(NewNode(100, "Sonstiges"))
	lebensmittel := NewNode(400, "Lebensmittel")
	lebensmittel.AddLinked(NewNode(50, " Sonstiges"))
	root.AddIssues([]*Node{wohnen, lebensmittel, NewNode(80, " Sonstiges")})

	g := BuildGraph(root, DiagramTitle(2024, 3))

	ids := make(map[string]int)
	for _, n := range g.Nodes {
		ids[n.ID]++
	}
	for id, count := range ids {
		if count > 1 {
			t.Errorf("node ID %q used %d times", id, count)
		}
	}
	for _, want := range []string{"sonstiges", "sonstiges-2", "sonstiges-3"} {
		if ids[want] != 1 {
			t.Errorf("missing node ID %q (got %v)", want, ids)
		}
	}
}

func TestDiagramTitle_WholeYear(t *testing.T) {
	if got := DiagramTitle(2024, 13); got != "Money flow 2024 (whole year)" {
		t.Errorf("DiagramTitle = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Groceries", "groceries"},
		{"Lebensmittel & Drogerie", "lebensmittel-drogerie"},
		{"Café Münster", "cafe-munster"},
		{" Groceries", "groceries"},
		{"---", "node"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.label); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
