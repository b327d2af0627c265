// Package insight turns raw connections, pathways, and metrics into a
// ranked strategic report: key findings, threshold-gated recommendations,
// and under-connected network gaps. Output is pure data for exporters and
// visualizers to render; given identical inputs the report is identical.
package insight

import (
	"fmt"
	"sort"

	"github.com/seaotterie/grantgraph/pkg/common"
)

// Thresholds gating the recommendation and gap logic.
const (
	collaborationMinConnections = 2
	directApproachMinStrength   = 0.7
	strongPathwayMinValue       = 0.5
	gapMaxStrongPathways        = 2
)

// Synthesize builds the strategic report. Organizations are consulted for
// display names and categories only; nothing here recomputes graph state.
func Synthesize(
	orgs []common.OrganizationRecord,
	conns []common.Connection,
	pathways []common.Pathway,
	orgMetrics map[string]common.NetworkMetrics,
) common.Insights {
	names := make(map[string]string, len(orgs))
	for _, o := range orgs {
		if o.ID != "" {
			names[o.ID] = o.Name
		}
	}

	return common.Insights{
		KeyFindings:     keyFindings(orgs, conns, orgMetrics, names),
		Recommendations: recommendations(conns, pathways),
		NetworkGaps:     networkGaps(orgs, pathways, names),
	}
}

func keyFindings(orgs []common.OrganizationRecord, conns []common.Connection, orgMetrics map[string]common.NetworkMetrics, names map[string]string) []string {
	findings := []string{
		fmt.Sprintf("Identified %d direct connections between organizations", len(conns)),
	}

	if strongest, ok := strongestConnection(conns); ok {
		findings = append(findings, fmt.Sprintf(
			"Strongest connection: %s and %s (strength %.1f via %d shared people)",
			displayName(names, strongest.OrgA),
			displayName(names, strongest.OrgB),
			strongest.Strength,
			len(strongest.SharedPeople),
		))
	}

	if central, ok := mostCentral(orgMetrics); ok {
		findings = append(findings, fmt.Sprintf(
			"Most central organization: %s (betweenness %.2f)",
			displayName(names, central), orgMetrics[central].Betweenness,
		))
	}

	if category, count := commonCategory(orgs, conns); category != "" {
		findings = append(findings, fmt.Sprintf(
			"Most common category among connected organizations: %s (%d organizations)",
			category, count,
		))
	}

	return findings
}

// strongestConnection picks the highest-strength connection; the first
// found wins ties so the result is stable for a given input order.
func strongestConnection(conns []common.Connection) (common.Connection, bool) {
	if len(conns) == 0 {
		return common.Connection{}, false
	}
	best := conns[0]
	for _, c := range conns[1:] {
		if c.Strength > best.Strength {
			best = c
		}
	}
	return best, true
}

// mostCentral returns the org with the highest betweenness; false when no
// organization sits between any others. Ties break on the smaller ID.
func mostCentral(orgMetrics map[string]common.NetworkMetrics) (string, bool) {
	ids := make([]string, 0, len(orgMetrics))
	for id := range orgMetrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestScore := 0.0
	for _, id := range ids {
		if m := orgMetrics[id]; m.Betweenness > bestScore {
			best = id
			bestScore = m.Betweenness
		}
	}
	return best, best != ""
}

func commonCategory(orgs []common.OrganizationRecord, conns []common.Connection) (string, int) {
	connected := make(map[string]struct{})
	for _, c := range conns {
		connected[c.OrgA] = struct{}{}
		connected[c.OrgB] = struct{}{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, o := range orgs {
		if o.Category == "" {
			continue
		}
		if _, ok := connected[o.ID]; !ok {
			continue
		}
		if _, seen := counts[o.Category]; !seen {
			order = append(order, o.Category)
		}
		counts[o.Category]++
	}

	best := ""
	bestCount := 0
	for _, cat := range order {
		if counts[cat] > bestCount {
			best = cat
			bestCount = counts[cat]
		}
	}
	return best, bestCount
}

func recommendations(conns []common.Connection, pathways []common.Pathway) []string {
	var recs []string

	if len(conns) >= collaborationMinConnections {
		recs = append(recs, "Multiple shared-board relationships found: consider collaborative grant applications with connected organizations")
	}

	strongestPath := 0.0
	for _, p := range pathways {
		if p.PathStrength > strongestPath {
			strongestPath = p.PathStrength
		}
	}
	if strongestPath >= directApproachMinStrength {
		recs = append(recs, "A high-strength introduction pathway exists: a direct approach through the shared contact is recommended")
	}

	if len(conns) == 0 {
		recs = append(recs, "No direct relationships found: build connections through sector events or intermediary funders before outreach")
	}

	return recs
}

// networkGaps flags organizations with fewer than two strong pathways
// (strategic value above the threshold). Severity is High with zero
// strong pathways, Moderate otherwise.
func networkGaps(orgs []common.OrganizationRecord, pathways []common.Pathway, names map[string]string) []common.NetworkGap {
	strong := make(map[string]int)
	for _, p := range pathways {
		if p.StrategicValue > strongPathwayMinValue {
			strong[p.SourceID]++
			strong[p.TargetID]++
		}
	}

	var gaps []common.NetworkGap
	for _, o := range orgs {
		if o.ID == "" {
			continue
		}
		count := strong[o.ID]
		if count >= gapMaxStrongPathways {
			continue
		}
		severity := "Moderate"
		recommendation := "Strengthen existing pathways before outreach"
		if count == 0 {
			severity = "High"
			recommendation = "No strong pathways: identify and cultivate a first connection"
		}
		gaps = append(gaps, common.NetworkGap{
			OrgID:          o.ID,
			OrgName:        displayName(names, o.ID),
			StrongPathways: count,
			Severity:       severity,
			Recommendation: recommendation,
		})
	}

	sort.SliceStable(gaps, func(a, b int) bool {
		return gaps[a].StrongPathways < gaps[b].StrongPathways
	})
	return gaps
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
