// Package metrics computes graph-theoretic measures over the relationship
// network: per-organization centrality, network density and clustering, and
// the bespoke per-person influence score.
//
// Centrality runs on the org-level projection of the graph with weights
// collapsed to an undirected view. Betweenness and closeness come from
// gonum; eigenvector centrality is a capped power iteration because the
// required fall-back-to-zero semantics on non-convergence are part of the
// contract, not an error.
package metrics

import (
	"math"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/network"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	gonetwork "gonum.org/v1/gonum/graph/network"
)

// Config bounds the iterative parts of the computation.
type Config struct {
	EigenvectorMaxIter   int
	EigenvectorTolerance float64
}

// DefaultConfig returns the production iteration bounds.
func DefaultConfig() Config {
	return Config{
		EigenvectorMaxIter:   1000,
		EigenvectorTolerance: 1e-6,
	}
}

// projection is the undirected org-level view of the network: organization
// and external nodes only, one edge per connected pair.
type projection struct {
	ids       []string
	index     map[string]int
	neighbors map[string][]string
	edgeCount int
}

func project(n *network.Network) *projection {
	p := &projection{
		index:     make(map[string]int),
		neighbors: make(map[string][]string),
	}
	for _, id := range n.NodeIDs() {
		node, _ := n.Node(id)
		if node.Kind == network.NodePerson {
			continue
		}
		p.index[id] = len(p.ids)
		p.ids = append(p.ids, id)
	}
	for _, e := range n.OrgEdges() {
		if _, ok := p.index[e.A]; !ok {
			continue
		}
		if _, ok := p.index[e.B]; !ok {
			continue
		}
		p.neighbors[e.A] = append(p.neighbors[e.A], e.B)
		p.neighbors[e.B] = append(p.neighbors[e.B], e.A)
		p.edgeCount++
	}
	return p
}

// ComputeOrganizationMetrics returns a metrics record for every
// organization-level node in the graph. Isolated nodes get all-zero
// records rather than being omitted, so downstream consumers can rely on
// completeness. The graph is never mutated.
func ComputeOrganizationMetrics(n *network.Network, cfg Config) map[string]common.NetworkMetrics {
	p := project(n)
	out := make(map[string]common.NetworkMetrics, len(p.ids))
	for _, id := range p.ids {
		out[id] = common.NetworkMetrics{}
	}
	if p.edgeCount == 0 {
		return out
	}

	g := simple.NewUndirectedGraph()
	for i := range p.ids {
		g.AddNode(simple.Node(i))
	}
	seen := make(map[[2]int]struct{})
	for _, id := range p.ids {
		a := p.index[id]
		for _, nb := range p.neighbors[id] {
			b := p.index[nb]
			lo, hi := a, b
			if hi < lo {
				lo, hi = hi, lo
			}
			if _, dup := seen[[2]int{lo, hi}]; dup {
				continue
			}
			seen[[2]int{lo, hi}] = struct{}{}
			g.SetEdge(simple.Edge{F: simple.Node(lo), T: simple.Node(hi)})
		}
	}

	betweenness := gonetwork.Betweenness(g)
	closeness := gonetwork.Closeness(g, path.DijkstraAllPaths(g))
	eigen := eigenvector(p, cfg)

	total := len(p.ids)
	betweennessNorm := 0.0
	if total > 2 {
		betweennessNorm = 2.0 / (float64(total-1) * float64(total-2))
	}

	for _, id := range p.ids {
		i := int64(p.index[id])
		degree := len(p.neighbors[id])

		m := common.NetworkMetrics{
			Degree:           degree,
			TotalConnections: degree,
			Eigenvector:      eigen[id],
		}
		if total > 1 {
			m.DegreeCentrality = float64(degree) / float64(total-1)
		}
		if v, ok := betweenness[i]; ok {
			m.Betweenness = clamp01(v * betweennessNorm)
		}
		if v, ok := closeness[i]; ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			m.Closeness = clamp01(v * float64(total-1))
		}
		out[id] = m
	}

	return out
}

// eigenvector computes eigenvector centrality by power iteration. If the
// iteration does not converge within the configured cap, every node falls
// back to 0.0 instead of the computation failing.
func eigenvector(p *projection, cfg Config) map[string]float64 {
	out := make(map[string]float64, len(p.ids))
	for _, id := range p.ids {
		out[id] = 0
	}

	count := len(p.ids)
	if count == 0 || p.edgeCount == 0 {
		return out
	}

	maxIter := cfg.EigenvectorMaxIter
	if maxIter <= 0 {
		maxIter = DefaultConfig().EigenvectorMaxIter
	}
	tol := cfg.EigenvectorTolerance
	if tol <= 0 {
		tol = DefaultConfig().EigenvectorTolerance
	}

	vec := make([]float64, count)
	for i := range vec {
		vec[i] = 1.0 / float64(count)
	}

	next := make([]float64, count)
	converged := false
	for iter := 0; iter < maxIter; iter++ {
		// Iterate on A+I: same eigenvectors, but the shift keeps the
		// iteration from oscillating on bipartite graphs.
		copy(next, vec)
		for _, id := range p.ids {
			i := p.index[id]
			for _, nb := range p.neighbors[id] {
				next[p.index[nb]] += vec[i]
			}
		}

		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return out
		}

		diff := 0.0
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - vec[i])
		}
		vec, next = next, vec

		if diff < tol*float64(count) {
			converged = true
			break
		}
	}
	if !converged {
		return out
	}

	for _, id := range p.ids {
		out[id] = vec[p.index[id]]
	}
	return out
}

// Density reports the standard graph density of the org-level projection:
// actual edges over possible edges.
func Density(n *network.Network) float64 {
	p := project(n)
	count := len(p.ids)
	if count < 2 {
		return 0
	}
	return 2.0 * float64(p.edgeCount) / (float64(count) * float64(count-1))
}

// AverageClustering reports the mean local clustering coefficient over the
// org-level projection.
func AverageClustering(n *network.Network) float64 {
	p := project(n)
	if len(p.ids) == 0 {
		return 0
	}

	adj := make(map[string]map[string]struct{}, len(p.ids))
	for _, id := range p.ids {
		set := make(map[string]struct{}, len(p.neighbors[id]))
		for _, nb := range p.neighbors[id] {
			set[nb] = struct{}{}
		}
		adj[id] = set
	}

	sum := 0.0
	for _, id := range p.ids {
		nbs := p.neighbors[id]
		k := len(nbs)
		if k < 2 {
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if _, ok := adj[nbs[i]][nbs[j]]; ok {
					links++
				}
			}
		}
		sum += 2.0 * float64(links) / (float64(k) * float64(k-1))
	}
	return sum / float64(len(p.ids))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
