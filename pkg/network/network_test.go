package network

import (
	"reflect"
	"testing"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/roster"
)

// triangleOrgs is the canonical three-org chain: X and Y share Jane,
// Y and Z share Tom, X and Z are not directly connected.
func triangleOrgs() []common.OrganizationRecord {
	return []common.OrganizationRecord{
		{
			ID:   "org-x",
			Name: "X",
			BoardMembers: []common.BoardMember{
				{Name: "Jane Smith"},
			},
		},
		{
			ID:   "org-y",
			Name: "Y",
			BoardMembers: []common.BoardMember{
				{Name: "Jane Smith"},
				{Name: "Tom Baker"},
			},
		},
		{
			ID:   "org-z",
			Name: "Z",
			BoardMembers: []common.BoardMember{
				{Name: "Tom Baker"},
			},
		},
	}
}

func buildTriangle() *Network {
	orgs := triangleOrgs()
	return Build(orgs, roster.Extract(orgs))
}

func TestBuildTriangle(t *testing.T) {
	t.Parallel()

	n := buildTriangle()

	if got := n.OrgIDs(); !reflect.DeepEqual(got, []string{"org-x", "org-y", "org-z"}) {
		t.Fatalf("org ids = %v", got)
	}

	for _, person := range []string{"Jane Smith", "Tom Baker"} {
		node, ok := n.Node(person)
		if !ok || node.Kind != NodePerson {
			t.Fatalf("expected person node for %q, got %+v (ok=%v)", person, node, ok)
		}
	}

	e, ok := n.EdgeBetween("org-x", "org-y")
	if !ok {
		t.Fatal("missing edge org-x/org-y")
	}
	if e.Kind != EdgeBoard || !reflect.DeepEqual(e.SharedPeople, []string{"Jane Smith"}) {
		t.Fatalf("org-x/org-y edge = %+v", e)
	}

	if _, ok := n.EdgeBetween("org-x", "org-z"); ok {
		t.Fatal("org-x and org-z must not be directly connected")
	}
}

func TestConnectionsTriangle(t *testing.T) {
	t.Parallel()

	conns := buildTriangle().Connections()
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d: %+v", len(conns), conns)
	}

	for _, c := range conns {
		if c.OrgA >= c.OrgB {
			t.Fatalf("endpoints not sorted: %+v", c)
		}
		if c.Strength != 1.0 {
			t.Fatalf("single shared person should give strength 1.0, got %v", c.Strength)
		}
		if c.Type != common.ConnDirectBoardOverlap {
			t.Fatalf("type = %q, want %q", c.Type, common.ConnDirectBoardOverlap)
		}
	}
}

func TestConnectionStrengthAdditive(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{
			ID: "org-a", Name: "Alpha",
			BoardMembers: []common.BoardMember{
				{Name: "P One"}, {Name: "P Two"}, {Name: "P Three"},
			},
			FundingRelationships: []common.FundingRecord{
				{RecipientID: "org-b", Amount: 2000},
			},
		},
		{
			ID: "org-b", Name: "Beta",
			BoardMembers: []common.BoardMember{
				{Name: "P One"}, {Name: "P Two"}, {Name: "P Three"},
			},
		},
	}

	n := BuildWithFunding(orgs, roster.Extract(orgs))
	conns := n.Connections()
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(conns))
	}

	c := conns[0]
	// Three shared people plus 2000/1000 in funding weight.
	if c.Strength != 5.0 {
		t.Fatalf("strength = %v, want 5.0", c.Strength)
	}
	if c.Type != common.ConnPartnership {
		t.Fatalf("type = %q, want %q", c.Type, common.ConnPartnership)
	}

	e, ok := n.EdgeBetween("org-a", "org-b")
	if !ok || e.Kind != EdgeBoth {
		t.Fatalf("expected merged board+funding edge, got %+v (ok=%v)", e, ok)
	}
	if e.Directed {
		t.Fatal("merged edge must not stay directed")
	}
}

func TestDisjointBoardsProduceNoConnections(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{ID: "org-a", Name: "Alpha", BoardMembers: []common.BoardMember{{Name: "Ann Lee"}}},
		{ID: "org-b", Name: "Beta", BoardMembers: []common.BoardMember{{Name: "Bob Ray"}}},
	}

	n := Build(orgs, roster.Extract(orgs))
	if conns := n.Connections(); len(conns) != 0 {
		t.Fatalf("expected no connections, got %+v", conns)
	}
	if got := len(n.OrgIDs()); got != 2 {
		t.Fatalf("both organizations must remain as nodes, got %d", got)
	}
}

func TestFundingToUnknownRecipientCreatesExternalNode(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{
			ID: "org-a", Name: "Alpha Fund",
			FundingRelationships: []common.FundingRecord{
				{RecipientName: "Community Fund", Amount: 50000},
			},
		},
	}

	n := BuildWithFunding(orgs, roster.Extract(orgs))

	node, ok := n.Node("community_fund")
	if !ok {
		t.Fatal("expected external node keyed community_fund")
	}
	if node.Kind != NodeExternal || node.Name != "Community Fund" {
		t.Fatalf("external node = %+v", node)
	}

	conns := n.Connections()
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(conns))
	}
	c := conns[0]
	if c.Type != common.ConnFunding {
		t.Fatalf("type = %q, want %q", c.Type, common.ConnFunding)
	}
	if c.Strength != 50.0 {
		t.Fatalf("strength = %v, want amount-derived 50.0", c.Strength)
	}
	if len(c.SharedPeople) != 0 {
		t.Fatalf("funding-only connection must have no shared people: %+v", c)
	}
}

func TestFundingToKnownRecipientReusesOrgNode(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{
			ID: "org-a", Name: "Alpha Fund",
			FundingRelationships: []common.FundingRecord{
				{RecipientName: "Beta Services", Amount: 10000},
			},
		},
		{ID: "org-b", Name: "Beta Services"},
	}

	n := BuildWithFunding(orgs, roster.Extract(orgs))

	if _, ok := n.Node("beta_services"); ok {
		t.Fatal("name-matched recipient must not create an external node")
	}
	e, ok := n.EdgeBetween("org-a", "org-b")
	if !ok || e.Kind != EdgeFunding || !e.Directed {
		t.Fatalf("expected directed funding edge, got %+v (ok=%v)", e, ok)
	}
	if e.Amount != 10000 {
		t.Fatalf("amount = %v, want 10000", e.Amount)
	}
}

func TestSelfFundingIgnored(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{
			ID: "org-a", Name: "Alpha",
			FundingRelationships: []common.FundingRecord{
				{RecipientID: "org-a", Amount: 5000},
			},
		},
	}

	n := BuildWithFunding(orgs, roster.Extract(orgs))
	if conns := n.Connections(); len(conns) != 0 {
		t.Fatalf("self-funding must not create a connection: %+v", conns)
	}
}
