package metrics

import "github.com/seaotterie/grantgraph/pkg/common"

// Influence score components. The total is capped at 2.0 rather than 1.0:
// multi-board individuals can exceed a single-dimension maximum, and the
// pathway scoring consumes the wider range unnormalized.
const (
	influenceBasePerAffiliation = 0.2
	influenceBaseCap            = 1.0
	influenceDiversityPerOrg    = 0.15
	influenceDiversityCap       = 0.5
	influenceBoardWeight        = 0.6
	influenceStaffWeight        = 0.4
	influenceRoleCap            = 1.0
	influenceTotalCap           = 2.0
)

// InfluenceScores computes the cross-organizational influence score for
// every person, keyed by normalized name.
func InfluenceScores(people []common.Person) map[string]float64 {
	scores := make(map[string]float64, len(people))
	for _, p := range people {
		scores[p.Name] = influenceScore(p)
	}
	return scores
}

func influenceScore(p common.Person) float64 {
	total := len(p.Affiliations)
	if total == 0 {
		return 0
	}

	base := minFloat(influenceBaseCap, influenceBasePerAffiliation*float64(total))
	diversity := minFloat(influenceDiversityCap, influenceDiversityPerOrg*float64(p.OrgCount()))

	boardCount := 0
	staffCount := 0
	for _, a := range p.Affiliations {
		if a.Role == common.RoleBoard {
			boardCount++
		} else {
			staffCount++
		}
	}
	role := minFloat(influenceRoleCap,
		(influenceBoardWeight*float64(boardCount)+influenceStaffWeight*float64(staffCount))/float64(total))

	return minFloat(influenceTotalCap, base+diversity+role)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
