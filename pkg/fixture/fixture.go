// Package fixture provides a small, explicit sample dataset for tests and
// examples. Production entry points never fall back to it; an empty input
// is an empty input.
package fixture

import "github.com/seaotterie/grantgraph/pkg/common"

// SampleOrganizations returns a handful of fictional nonprofits with
// overlapping boards, shared staff, and one funding relationship. The
// overlaps are deliberate: Sarah Johnson bridges three organizations and
// the Morrison Family Foundation funds an organization outside the set.
func SampleOrganizations() []common.OrganizationRecord {
	return []common.OrganizationRecord{
		{
			ID:       "org-riverside-arts",
			Name:     "Riverside Arts Council",
			Category: "Arts & Culture",
			BoardMembers: []common.BoardMember{
				{Name: "Sarah Johnson", Position: "Board Chair"},
				{Name: "Dr. Michael Torres"},
				{Name: "Elena Vasquez", Position: "Treasurer"},
			},
			KeyPersonnel: []common.Personnel{
				{Name: "Priya Natarajan", Title: "Executive Director"},
			},
		},
		{
			ID:       "org-harbor-youth",
			Name:     "Harbor Youth Alliance",
			Category: "Youth Services",
			BoardMembers: []common.BoardMember{
				{Name: "Sarah Johnson"},
				{Name: "Marcus Webb", Position: "Secretary"},
				{Name: "Aisha Okafor"},
			},
			KeyPersonnel: []common.Personnel{
				{Name: "Daniel Reyes", Title: "Program Director"},
			},
		},
		{
			ID:       "org-greenfield-trust",
			Name:     "Greenfield Community Trust",
			Category: "Community Development",
			BoardMembers: []common.BoardMember{
				{Name: "Sarah Johnson, PhD"},
				{Name: "Elena Vasquez"},
				{Name: "Robert Chen Jr."},
			},
			KeyPersonnel: []common.Personnel{
				{Name: "Priya Natarajan", Title: "Advisor"},
			},
		},
		{
			ID:       "org-morrison-foundation",
			Name:     "Morrison Family Foundation",
			Category: "Philanthropy",
			BoardMembers: []common.BoardMember{
				{Name: "Grace Morrison", Position: "President"},
				{Name: "Robert Chen Jr."},
			},
			FundingRelationships: []common.FundingRecord{
				{
					RecipientID: "org-harbor-youth",
					Amount:      75000,
					Year:        2024,
					Purpose:     "After-school programming",
				},
				{
					RecipientName: "Lakeside Food Bank",
					Amount:        40000,
					Year:          2024,
					Purpose:       "General operating support",
				},
			},
		},
	}
}
