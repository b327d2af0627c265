package pathway

import "github.com/seaotterie/grantgraph/pkg/network"

// shortestPaths enumerates up to max shortest paths from src to dst by BFS
// with parent tracking. It returns the paths and the shortest distance in
// edges; a disconnected pair yields (nil, -1), which callers treat as an
// empty result rather than an error.
func shortestPaths(n *network.Network, src, dst string, max int) ([][]string, int) {
	if src == dst {
		return nil, -1
	}

	dist := map[string]int{src: 0}
	parents := make(map[string][]string)
	queue := []string{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if found, ok := dist[dst]; ok && dist[cur] >= found {
			continue
		}
		for _, nb := range n.Neighbors(cur) {
			d, seen := dist[nb]
			switch {
			case !seen:
				dist[nb] = dist[cur] + 1
				parents[nb] = []string{cur}
				queue = append(queue, nb)
			case d == dist[cur]+1:
				parents[nb] = append(parents[nb], cur)
			}
		}
	}

	target, ok := dist[dst]
	if !ok {
		return nil, -1
	}

	var paths [][]string
	var walk func(node string, suffix []string)
	walk = func(node string, suffix []string) {
		if len(paths) >= max {
			return
		}
		if node == src {
			path := make([]string, 0, len(suffix)+1)
			path = append(path, src)
			for i := len(suffix) - 1; i >= 0; i-- {
				path = append(path, suffix[i])
			}
			paths = append(paths, path)
			return
		}
		for _, p := range parents[node] {
			walk(p, append(suffix, node))
		}
	}
	walk(dst, nil)

	return paths, target
}

// simplePaths enumerates up to max simple paths from src to dst with an
// edge count in [minLen, maxLen], retaining only paths where at least one
// intermediary is a person node. Enumeration stops as soon as the cap is
// reached to keep the per-pair cost bounded.
func simplePaths(n *network.Network, src, dst string, minLen, maxLen, max int) [][]string {
	var paths [][]string
	visited := map[string]bool{src: true}
	route := []string{src}

	var dfs func(cur string)
	dfs = func(cur string) {
		if len(paths) >= max {
			return
		}
		if cur == dst {
			edges := len(route) - 1
			if edges >= minLen && edges <= maxLen && hasPersonIntermediary(n, route) {
				paths = append(paths, append([]string(nil), route...))
			}
			return
		}
		if len(route)-1 >= maxLen {
			return
		}
		for _, nb := range n.Neighbors(cur) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			route = append(route, nb)
			dfs(nb)
			route = route[:len(route)-1]
			visited[nb] = false
			if len(paths) >= max {
				return
			}
		}
	}
	dfs(src)

	return paths
}

func hasPersonIntermediary(n *network.Network, route []string) bool {
	for _, id := range route[1 : len(route)-1] {
		if node, ok := n.Node(id); ok && node.Kind == network.NodePerson {
			return true
		}
	}
	return false
}
