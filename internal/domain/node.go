// Package domain holds the flow-graph model produced by the aggregation
// engine: weighted nodes, the root node joining income and issue groups, and
// the flattened node/link form handed to a rendering collaborator.
package domain

// Node is one weighted node of the Sankey flow graph. Amount is a
// non-negative magnitude for every assembled node except the residual
// "other income" node, which may go negative when income filters
// double-count. It is not clamped.
//
// Nodes are built bottom-up and owned exclusively by their parent; no node
// is mutated after the aggregation call that created it returns.
type Node struct {
	amount float64
	label  string
	linked []*Node
}

// NewNode creates a leaf node with the given amount and label.
func NewNode(amount float64, label string) *Node {
	return &Node{amount: amount, label: label}
}

// Amount returns the node's weight.
func (n *Node) Amount() float64 { return n.amount }

// Label returns the node's display label. Labels rewritten for rendering
// dedup carry a single leading space (see the engine's issue aggregator).
func (n *Node) Label() string { return n.label }

// AddLinked attaches a child node. Insertion order is preserved.
func (n *Node) AddLinked(child *Node) {
	n.linked = append(n.linked, child)
}

// Linked returns the ordered child nodes.
func (n *Node) Linked() []*Node {
	return append([]*Node(nil), n.linked...)
}

// RootNode is the root of the assembled flow graph with two distinguished
// child groups: income nodes flowing into the root and issue nodes flowing
// out of it.
type RootNode struct {
	label   string
	incomes []*Node
	issues  []*Node
}

// NewRootNode creates an empty root with the given display label.
func NewRootNode(label string) *RootNode {
	return &RootNode{label: label}
}

// Label returns the root's display label.
func (r *RootNode) Label() string { return r.label }

// AddIncomes appends nodes to the income group.
func (r *RootNode) AddIncomes(nodes []*Node) {
	r.incomes = append(r.incomes, nodes...)
}

// AddIssues appends nodes to the issue group.
func (r *RootNode) AddIssues(nodes []*Node) {
	r.issues = append(r.issues, nodes...)
}

// AddIssue appends a single node to the issue group. The engine uses this
// for the synthesized unused-income leaf.
func (r *RootNode) AddIssue(node *Node) {
	r.issues = append(r.issues, node)
}

// Incomes returns the ordered income nodes.
func (r *RootNode) Incomes() []*Node {
	return append([]*Node(nil), r.incomes...)
}

// Issues returns the ordered issue nodes.
func (r *RootNode) Issues() []*Node {
	return append([]*Node(nil), r.issues...)
}

// IncomeAmount sums the income node amounts.
func (r *RootNode) IncomeAmount() float64 {
	var total float64
	for _, n := range r.incomes {
		total += n.amount
	}
	return total
}

// IssuesAmount sums the top-level issue node amounts. Deliberately
// non-recursive: each top-level issue amount already covers its full subtree
// because the engine's containment filter re-scans all matching rows at
// every level. Recursing here would double-count.
func (r *RootNode) IssuesAmount() float64 {
	var total float64
	for _, n := range r.issues {
		total += n.amount
	}
	return total
}
