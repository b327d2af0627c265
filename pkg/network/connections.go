package network

import "github.com/seaotterie/grantgraph/pkg/common"

// Connections derives the pairwise organization connection summaries from
// the org-level edges. Each record stores its endpoints as a sorted pair,
// and strength is strictly additive: one point per shared person plus the
// amount-derived weight of any funding transactions.
func (n *Network) Connections() []common.Connection {
	edges := n.OrgEdges()
	out := make([]common.Connection, 0, len(edges))
	for _, e := range edges {
		a, b := e.A, e.B
		if b < a {
			a, b = b, a
		}

		strength := float64(len(e.SharedPeople))
		if e.Amount > 0 {
			strength += e.Amount / fundingWeightDivisor
		}

		out = append(out, common.Connection{
			OrgA:         a,
			OrgB:         b,
			SharedPeople: append([]string(nil), e.SharedPeople...),
			Strength:     strength,
			Type:         n.Classify(e),
		})
	}
	return out
}

// Classify maps an edge onto its connection type. Funding-only edges are
// funding relationships; edges with shared people are classified by the
// roles those people hold on each side.
func (n *Network) Classify(e *Edge) common.ConnectionType {
	if len(e.SharedPeople) == 0 {
		return common.ConnFunding
	}
	if len(e.SharedPeople) >= 3 {
		return common.ConnPartnership
	}

	boardBoth := false
	staffBoth := false
	for _, person := range e.SharedPeople {
		roleA, okA := n.Role(person, e.A)
		roleB, okB := n.Role(person, e.B)
		if !okA || !okB {
			continue
		}
		if roleA == common.RoleBoard && roleB == common.RoleBoard {
			boardBoth = true
		}
		if roleA == common.RoleStaff && roleB == common.RoleStaff {
			staffBoth = true
		}
	}

	switch {
	case boardBoth:
		return common.ConnDirectBoardOverlap
	case staffBoth:
		return common.ConnSharedLeadership
	default:
		return common.ConnBoardToBoard
	}
}
