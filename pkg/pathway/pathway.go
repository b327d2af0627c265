// Package pathway enumerates and scores multi-hop connection pathways
// between organizations: first degree through a directly shared person,
// second degree through one bridging node, third degree through bounded
// simple-path search. Pairwise analysis is O(N²) before per-pair search
// cost; callers with hundreds of organizations are expected to pre-rank
// and restrict analysis to a top-K subset before calling in.
package pathway

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/network"
)

// Analyze discovers pathways of degree 1–3 for every unordered pair of
// organizations and returns them sorted descending by strategic value
// (stable, so ties keep discovery order). Influence maps normalized person
// names to their influence score. Disconnected pairs contribute nothing;
// nothing in here returns an error because a missing path is a result, not
// a failure.
func Analyze(n *network.Network, influence map[string]float64, cfg Config) []common.Pathway {
	cfg = cfg.withDefaults()
	orgs := n.OrgIDs()

	var all []common.Pathway
	for i := 0; i < len(orgs); i++ {
		for j := i + 1; j < len(orgs); j++ {
			pair := analyzePair(n, orgs[i], orgs[j], influence, cfg)
			if len(pair) > cfg.MaxPerPair {
				pair = pair[:cfg.MaxPerPair]
			}
			all = append(all, pair...)
		}
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].StrategicValue > all[b].StrategicValue
	})
	return all
}

func analyzePair(n *network.Network, src, dst string, influence map[string]float64, cfg Config) []common.Pathway {
	var found []common.Pathway

	// First degree: one pathway per directly shared person.
	if e, ok := n.EdgeBetween(src, dst); ok {
		for _, person := range e.SharedPeople {
			found = append(found, score(
				common.DegreeFirst,
				src, dst,
				[]string{src, dst},
				[]string{person},
				n.Classify(e),
				influence,
				cfg,
			))
		}
	}

	// Second degree: all shortest paths of exactly two edges.
	paths, dist := shortestPaths(n, src, dst, cfg.MaxShortestPaths)
	if dist == 2 {
		for _, route := range paths {
			found = append(found, score(
				common.DegreeSecond,
				src, dst,
				route,
				routeIntermediaries(n, route, influence),
				common.ConnExtendedNetwork,
				influence,
				cfg,
			))
		}
	}

	// Third degree: bounded simple-path enumeration, person required.
	for _, route := range simplePaths(n, src, dst, 3, cfg.MaxPathLength, cfg.MaxSimplePaths) {
		found = append(found, score(
			common.DegreeThird,
			src, dst,
			route,
			routeIntermediaries(n, route, influence),
			common.ConnExtendedNetwork,
			influence,
			cfg,
		))
	}

	sort.SliceStable(found, func(a, b int) bool {
		return found[a].StrategicValue > found[b].StrategicValue
	})
	return found
}

// routeIntermediaries maps a node route onto the person names realizing
// its hops: person nodes contribute themselves, bridging organizations
// contribute the highest-influence shared person on the edge entering
// them. Order follows the route; duplicates are dropped.
func routeIntermediaries(n *network.Network, route []string, influence map[string]float64) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(name string) {
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for i := 1; i < len(route)-1; i++ {
		node, ok := n.Node(route[i])
		if !ok {
			continue
		}
		if node.Kind == network.NodePerson {
			add(node.Name)
			continue
		}
		if e, ok := n.EdgeBetween(route[i-1], route[i]); ok {
			add(topInfluence(e.SharedPeople, influence))
		}
	}
	return out
}

func topInfluence(people []string, influence map[string]float64) string {
	best := ""
	bestScore := -1.0
	for _, p := range people {
		if s := influence[p]; s > bestScore {
			best = p
			bestScore = s
		}
	}
	return best
}

// Strategic-value blend bounds.
const (
	intermediaryBonusPerPerson = 0.1
	intermediaryBonusCap       = 0.3
	strengthBlendWeight        = 0.2
)

func score(
	degree common.Degree,
	src, dst string,
	route []string,
	intermediaries []string,
	connType common.ConnectionType,
	influence map[string]float64,
	cfg Config,
) common.Pathway {
	profile := cfg.Profiles[degree]

	scores := make([]float64, 0, len(intermediaries))
	for _, name := range intermediaries {
		scores = append(scores, influence[name])
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		mean = 0
	}
	strength := mean * profile.Weight

	bonus := intermediaryBonusPerPerson * float64(len(intermediaries))
	if bonus > intermediaryBonusCap {
		bonus = intermediaryBonusCap
	}
	strategic := profile.BaseStrategicValue + bonus + strengthBlendWeight*strength
	if strategic > 1.0 {
		strategic = 1.0
	}

	return common.Pathway{
		SourceID:               src,
		TargetID:               dst,
		Degree:                 degree,
		Type:                   connType,
		Route:                  append([]string(nil), route...),
		Intermediaries:         intermediaries,
		PathStrength:           strength,
		AccessProbability:      profile.AccessProbability,
		IntroductionDifficulty: profile.IntroductionDifficulty,
		StrategicValue:         strategic,
	}
}
