// Package roster extracts a deduplicated set of person records from raw
// organization filings. People are merged across organizations by their
// normalized name, which acts as the identity key for everything downstream.
package roster

import (
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/logger"
)

// Extract walks the organization records in input order and produces one
// Person per distinct normalized name, carrying every (organization, role)
// pair the person was found under. Affiliation order preserves first-seen
// order and duplicate (org, role) pairs are dropped.
//
// Organizations without an identifier cannot become stable graph nodes and
// are skipped without error; unparseable names are likewise excluded.
func Extract(orgs []common.OrganizationRecord) []common.Person {
	people := make([]common.Person, 0)
	index := make(map[string]int)

	record := func(raw string, orgID string, role common.RoleKind, position string) {
		name := NormalizeName(raw)
		if name == "" {
			return
		}

		idx, ok := index[name]
		if !ok {
			idx = len(people)
			index[name] = idx
			people = append(people, common.Person{Name: name})
		}
		p := &people[idx]

		if !containsString(p.RawNames, raw) {
			p.RawNames = append(p.RawNames, raw)
		}
		for _, a := range p.Affiliations {
			if a.OrgID == orgID && a.Role == role {
				return
			}
		}
		p.Affiliations = append(p.Affiliations, common.Affiliation{
			OrgID:    orgID,
			Role:     role,
			Position: position,
		})
	}

	skipped := 0
	for _, org := range orgs {
		if org.ID == "" {
			skipped++
			continue
		}
		for _, bm := range org.BoardMembers {
			record(bm.Name, org.ID, common.RoleBoard, bm.Position)
		}
		for _, kp := range org.KeyPersonnel {
			record(kp.Name, org.ID, common.RoleStaff, kp.Title)
		}
	}

	if skipped > 0 {
		logger.Debug("[Roster] Skipped organizations without identifier", "count", skipped)
	}

	return people
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
