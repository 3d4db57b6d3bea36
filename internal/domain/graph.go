package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/geldfluss/sankey/internal/frame"
)

// GraphNode is one node of the flattened graph. The ID is a slug of the
// label, stable across runs so renderers can key on it.
type GraphNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Link is one weighted edge between two nodes, referenced by index into the
// graph's node list.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// Graph is the renderer-facing form of an assembled flow graph: income
// nodes → root → issue nodes → sub-issue nodes, plus a textual diagram
// title. Turning this into pixels or HTML is a collaborator's job.
type Graph struct {
	Title string      `json:"title"`
	Nodes []GraphNode `json:"nodes"`
	Links []Link      `json:"links"`

	slugCounts map[string]int
}

// BuildGraph flattens an assembled root node into node and link lists.
// Node order: root, income nodes in declaration order, then issue subtrees
// depth-first in aggregation order.
func BuildGraph(root *RootNode, title string) *Graph {
	g := &Graph{Title: title}

	rootIdx := g.addNode(root.Label(), 0)

	var incomeTotal float64
	for _, income := range root.Incomes() {
		idx := g.addNode(income.Label(), income.Amount())
		g.Links = append(g.Links, Link{Source: idx, Target: rootIdx, Value: income.Amount()})
		incomeTotal += income.Amount()
	}
	g.Nodes[rootIdx].Value = incomeTotal

	for _, issue := range root.Issues() {
		g.addSubtree(rootIdx, issue)
	}

	return g
}

// addNode appends a node, numbering repeated slugs so every ID stays
// unique. Distinct labels can share a slug: the aggregator's dedup rewrites
// a repeated category value with a leading space, which slugification
// strips, and a value repeating at three or more tree positions even
// repeats the rewritten label itself.
func (g *Graph) addNode(label string, value float64) int {
	if g.slugCounts == nil {
		g.slugCounts = make(map[string]int)
	}
	slug := Slugify(label)
	g.slugCounts[slug]++
	if n := g.slugCounts[slug]; n > 1 {
		slug = fmt.Sprintf("%s-%d", slug, n)
	}
	g.Nodes = append(g.Nodes, GraphNode{ID: slug, Label: label, Value: value})
	return len(g.Nodes) - 1
}

func (g *Graph) addSubtree(parentIdx int, node *Node) {
	idx := g.addNode(node.Label(), node.Amount())
	g.Links = append(g.Links, Link{Source: parentIdx, Target: idx, Value: node.Amount()})
	for _, child := range node.Linked() {
		g.addSubtree(idx, child)
	}
}

// DiagramTitle describes the analyzed period for the rendering collaborator.
// The whole-year sentinel month yields the year-only form.
func DiagramTitle(year, month int) string {
	if month == frame.WholeYear {
		return fmt.Sprintf("Money flow %d (whole year)", year)
	}
	return fmt.Sprintf("Money flow %d-%02d", year, month)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a node label to a stable, URL-safe identifier.
// Accented characters are decomposed and stripped, everything outside
// [a-z0-9] collapses to hyphens. Labels rewritten with a leading dedup
// space slug identically to their original; addNode numbers the repeats.
func Slugify(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, label)
	if err != nil {
		normalized = label
	}

	slug := strings.ToLower(normalized)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "node"
	}
	return slug
}
