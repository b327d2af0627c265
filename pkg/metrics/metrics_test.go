package metrics

import (
	"math"
	"testing"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/network"
	"github.com/seaotterie/grantgraph/pkg/roster"
)

func buildNetwork(t *testing.T, orgs []common.OrganizationRecord) *network.Network {
	t.Helper()
	return network.Build(orgs, roster.Extract(orgs))
}

func chainOrgs() []common.OrganizationRecord {
	return []common.OrganizationRecord{
		{ID: "org-x", Name: "X", BoardMembers: []common.BoardMember{{Name: "Jane Smith"}}},
		{ID: "org-y", Name: "Y", BoardMembers: []common.BoardMember{{Name: "Jane Smith"}, {Name: "Tom Baker"}}},
		{ID: "org-z", Name: "Z", BoardMembers: []common.BoardMember{{Name: "Tom Baker"}}},
	}
}

func TestComputeOrganizationMetricsChain(t *testing.T) {
	t.Parallel()

	n := buildNetwork(t, chainOrgs())
	got := ComputeOrganizationMetrics(n, DefaultConfig())

	for _, id := range []string{"org-x", "org-y", "org-z"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing metrics record for %s", id)
		}
	}

	y := got["org-y"]
	if y.Betweenness <= got["org-x"].Betweenness || y.Betweenness <= got["org-z"].Betweenness {
		t.Fatalf("bridge org must have the highest betweenness: %+v", got)
	}
	if y.Degree != 2 || y.TotalConnections != 2 {
		t.Fatalf("org-y degree = %d, total = %d, want 2/2", y.Degree, y.TotalConnections)
	}
	if y.DegreeCentrality != 1.0 {
		t.Fatalf("org-y degree centrality = %v, want 1.0", y.DegreeCentrality)
	}
	if got["org-x"].DegreeCentrality != 0.5 {
		t.Fatalf("org-x degree centrality = %v, want 0.5", got["org-x"].DegreeCentrality)
	}

	for id, m := range got {
		for name, v := range map[string]float64{
			"betweenness": m.Betweenness,
			"closeness":   m.Closeness,
			"eigenvector": m.Eigenvector,
		} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("%s %s = %v, want within [0, 1]", id, name, v)
			}
		}
	}

	// The bridge touches every edge; its eigenvector score dominates.
	if y.Eigenvector <= got["org-x"].Eigenvector {
		t.Fatalf("org-y eigenvector %v must exceed org-x %v", y.Eigenvector, got["org-x"].Eigenvector)
	}
}

func TestMetricsIsolatedOrganizationsZeroFilled(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{ID: "org-a", Name: "Alpha", BoardMembers: []common.BoardMember{{Name: "Ann Lee"}}},
		{ID: "org-b", Name: "Beta", BoardMembers: []common.BoardMember{{Name: "Bob Ray"}}},
	}
	n := buildNetwork(t, orgs)
	got := ComputeOrganizationMetrics(n, DefaultConfig())

	if len(got) != 2 {
		t.Fatalf("expected records for both isolated orgs, got %d", len(got))
	}
	for id, m := range got {
		if m != (common.NetworkMetrics{}) {
			t.Fatalf("isolated org %s must be all-zero, got %+v", id, m)
		}
	}
}

func TestDensity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		orgs []common.OrganizationRecord
		want float64
	}{
		{
			name: "chain of three",
			orgs: chainOrgs(),
			want: 2.0 / 3.0,
		},
		{
			name: "disjoint pair",
			orgs: []common.OrganizationRecord{
				{ID: "org-a", Name: "Alpha", BoardMembers: []common.BoardMember{{Name: "Ann Lee"}}},
				{ID: "org-b", Name: "Beta", BoardMembers: []common.BoardMember{{Name: "Bob Ray"}}},
			},
			want: 0,
		},
		{
			name: "single org",
			orgs: []common.OrganizationRecord{{ID: "org-a", Name: "Alpha"}},
			want: 0,
		},
		{
			name: "empty",
			orgs: nil,
			want: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			n := buildNetwork(t, tc.orgs)
			if got := Density(n); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Density = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAverageClustering(t *testing.T) {
	t.Parallel()

	// Full triangle: everyone shares one person with everyone.
	orgs := []common.OrganizationRecord{
		{ID: "org-a", Name: "A", BoardMembers: []common.BoardMember{{Name: "P Q"}}},
		{ID: "org-b", Name: "B", BoardMembers: []common.BoardMember{{Name: "P Q"}}},
		{ID: "org-c", Name: "C", BoardMembers: []common.BoardMember{{Name: "P Q"}}},
	}
	n := buildNetwork(t, orgs)
	if got := AverageClustering(n); math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("triangle clustering = %v, want 1.0", got)
	}

	// Chain: no triangles at all.
	if got := AverageClustering(buildNetwork(t, chainOrgs())); got != 0 {
		t.Fatalf("chain clustering = %v, want 0", got)
	}
}

func TestInfluenceScores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		person common.Person
		want   float64
	}{
		{
			name:   "no affiliations",
			person: common.Person{Name: "Nobody"},
			want:   0,
		},
		{
			name: "single board seat",
			person: common.Person{
				Name: "One Board",
				Affiliations: []common.Affiliation{
					{OrgID: "org-a", Role: common.RoleBoard},
				},
			},
			// 0.2 base + 0.15 diversity + 0.6 role.
			want: 0.95,
		},
		{
			name: "single staff role",
			person: common.Person{
				Name: "One Staff",
				Affiliations: []common.Affiliation{
					{OrgID: "org-a", Role: common.RoleStaff},
				},
			},
			// 0.2 base + 0.15 diversity + 0.4 role.
			want: 0.75,
		},
		{
			name: "two boards",
			person: common.Person{
				Name: "Two Boards",
				Affiliations: []common.Affiliation{
					{OrgID: "org-a", Role: common.RoleBoard},
					{OrgID: "org-b", Role: common.RoleBoard},
				},
			},
			// 0.4 base + 0.3 diversity + 0.6 role.
			want: 1.3,
		},
		{
			name: "heavily affiliated hits component caps",
			person: common.Person{
				Name: "Everywhere",
				Affiliations: []common.Affiliation{
					{OrgID: "org-a", Role: common.RoleBoard},
					{OrgID: "org-b", Role: common.RoleBoard},
					{OrgID: "org-c", Role: common.RoleBoard},
					{OrgID: "org-d", Role: common.RoleBoard},
					{OrgID: "org-e", Role: common.RoleBoard},
					{OrgID: "org-f", Role: common.RoleBoard},
				},
			},
			// Base capped at 1.0, diversity at 0.5, role 0.6.
			want: 2.0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			scores := InfluenceScores([]common.Person{tc.person})
			got := scores[tc.person.Name]
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("influence = %v, want %v", got, tc.want)
			}
		})
	}
}
