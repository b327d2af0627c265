// Package network builds the relationship graph connecting organizations
// through shared board members, key personnel, and funding transactions.
//
// The graph is a mixed structure: organization nodes, person nodes, and
// external-recipient nodes coexist. Org-to-org edges carry the board or
// funding relationship used for connection summaries and metrics; person
// nodes hang off their organizations so pathway search can route through
// individual people. Construction is deterministic for a given input order.
package network

import (
	"sort"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/roster"
)

// NodeKind tags what a graph node represents.
type NodeKind string

const (
	NodeOrganization NodeKind = "organization"
	NodePerson       NodeKind = "person"
	NodeExternal     NodeKind = "external"
)

// Node is one vertex in the relationship graph.
type Node struct {
	ID       string
	Name     string
	Kind     NodeKind
	Category string
}

// EdgeKind tags the relationship an edge carries. The kind is resolved at
// insertion time: adding a funding edge where a board edge already exists
// (or vice versa) upgrades the edge to EdgeBoth instead of double-counting.
type EdgeKind string

const (
	EdgeBoard       EdgeKind = "board"
	EdgeFunding     EdgeKind = "funding"
	EdgeBoth        EdgeKind = "both"
	EdgeAffiliation EdgeKind = "affiliation"
)

// Edge connects two nodes. Board edges are undirected with weight equal to
// the shared-person count; funding edges run funder→recipient with weight
// proportional to amount so larger grants dominate path strength.
type Edge struct {
	A            string
	B            string
	Kind         EdgeKind
	Directed     bool
	Weight       float64
	SharedPeople []string
	Amount       float64
}

// fundingWeightDivisor scales grant amounts into edge weights.
const fundingWeightDivisor = 1000.0

// Network is the constructed relationship graph. Node and edge iteration
// follows insertion order so identical inputs yield identical outputs.
type Network struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[string]*Edge
	edgeOrder []string
	adj       map[string][]string

	// person name → org id → role, for connection classification
	roles map[string]map[string]common.RoleKind
}

func newNetwork() *Network {
	return &Network{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
		adj:   make(map[string][]string),
		roles: make(map[string]map[string]common.RoleKind),
	}
}

// Build constructs the board-overlap graph from organization records and
// the extracted person roster. Organizations without an identifier are
// excluded; an empty input yields an empty graph.
func Build(orgs []common.OrganizationRecord, people []common.Person) *Network {
	n := newNetwork()
	n.addOrganizations(orgs)
	n.addPeople(people)
	return n
}

// BuildWithFunding additionally wires directed funding edges from each
// organization's funding records. Recipients that cannot be matched to a
// known organization become external nodes keyed by normalized name.
func BuildWithFunding(orgs []common.OrganizationRecord, people []common.Person) *Network {
	n := Build(orgs, people)

	nameIndex := make(map[string]string, len(orgs))
	for _, org := range orgs {
		if org.ID == "" {
			continue
		}
		nameIndex[roster.NormalizeOrgKey(org.Name)] = org.ID
	}

	for _, org := range orgs {
		if org.ID == "" {
			continue
		}
		for _, fr := range org.FundingRelationships {
			recipient := n.resolveRecipient(fr, nameIndex)
			if recipient == "" || recipient == org.ID {
				continue
			}
			n.addFundingEdge(org.ID, recipient, fr.Amount)
		}
	}

	return n
}

func (n *Network) addOrganizations(orgs []common.OrganizationRecord) {
	for _, org := range orgs {
		if org.ID == "" {
			continue
		}
		n.addNode(&Node{
			ID:       org.ID,
			Name:     org.Name,
			Kind:     NodeOrganization,
			Category: org.Category,
		})
	}
}

func (n *Network) addPeople(people []common.Person) {
	for _, p := range people {
		orgIDs := n.knownOrgIDs(p)
		if len(orgIDs) == 0 {
			continue
		}

		n.addNode(&Node{ID: p.Name, Name: p.Name, Kind: NodePerson})
		for _, id := range orgIDs {
			n.addAffiliationEdge(p.Name, id)
		}
		for _, a := range p.Affiliations {
			if n.roles[p.Name] == nil {
				n.roles[p.Name] = make(map[string]common.RoleKind)
			}
			if _, ok := n.roles[p.Name][a.OrgID]; !ok {
				n.roles[p.Name][a.OrgID] = a.Role
			}
		}

		// Pairs are sorted before insertion so edge creation order does
		// not depend on affiliation order.
		sorted := append([]string(nil), orgIDs...)
		sort.Strings(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				n.addBoardEdge(sorted[i], sorted[j], p.Name)
			}
		}
	}
}

// knownOrgIDs returns the person's distinct affiliated organizations that
// exist as graph nodes, in affiliation order.
func (n *Network) knownOrgIDs(p common.Person) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(p.Affiliations))
	for _, a := range p.Affiliations {
		if _, ok := n.nodes[a.OrgID]; !ok {
			continue
		}
		if _, dup := seen[a.OrgID]; dup {
			continue
		}
		seen[a.OrgID] = struct{}{}
		ids = append(ids, a.OrgID)
	}
	return ids
}

func (n *Network) resolveRecipient(fr common.FundingRecord, nameIndex map[string]string) string {
	if fr.RecipientID != "" {
		if _, ok := n.nodes[fr.RecipientID]; ok {
			return fr.RecipientID
		}
	}
	key := roster.NormalizeOrgKey(fr.RecipientName)
	if key == "" {
		return ""
	}
	if id, ok := nameIndex[key]; ok {
		return id
	}
	n.addNode(&Node{ID: key, Name: fr.RecipientName, Kind: NodeExternal})
	return key
}

func (n *Network) addNode(node *Node) {
	if _, ok := n.nodes[node.ID]; ok {
		return
	}
	n.nodes[node.ID] = node
	n.nodeOrder = append(n.nodeOrder, node.ID)
}

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func (n *Network) addBoardEdge(a, b, person string) {
	key := pairKey(a, b)
	e, ok := n.edges[key]
	if !ok {
		e = &Edge{A: a, B: b, Kind: EdgeBoard}
		n.insertEdge(key, e)
	}
	switch e.Kind {
	case EdgeFunding:
		e.Kind = EdgeBoth
		e.Directed = false
	case EdgeAffiliation:
		return
	}
	e.Weight++
	e.SharedPeople = append(e.SharedPeople, person)
}

func (n *Network) addFundingEdge(funder, recipient string, amount float64) {
	key := pairKey(funder, recipient)
	e, ok := n.edges[key]
	if !ok {
		e = &Edge{A: funder, B: recipient, Kind: EdgeFunding, Directed: true}
		n.insertEdge(key, e)
	}
	switch e.Kind {
	case EdgeBoard:
		e.Kind = EdgeBoth
		e.Directed = false
	case EdgeAffiliation:
		return
	}
	e.Weight += amount / fundingWeightDivisor
	e.Amount += amount
}

func (n *Network) addAffiliationEdge(person, org string) {
	key := pairKey(person, org)
	if _, ok := n.edges[key]; ok {
		return
	}
	n.insertEdge(key, &Edge{A: person, B: org, Kind: EdgeAffiliation, Weight: 1})
}

func (n *Network) insertEdge(key string, e *Edge) {
	n.edges[key] = e
	n.edgeOrder = append(n.edgeOrder, key)
	n.adj[e.A] = append(n.adj[e.A], e.B)
	n.adj[e.B] = append(n.adj[e.B], e.A)
}

// Node returns the node with the given ID.
func (n *Network) Node(id string) (*Node, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// NodeIDs returns every node ID in insertion order.
func (n *Network) NodeIDs() []string {
	return append([]string(nil), n.nodeOrder...)
}

// OrgIDs returns the organization node IDs in insertion order. External
// recipients are not included.
func (n *Network) OrgIDs() []string {
	ids := make([]string, 0, len(n.nodeOrder))
	for _, id := range n.nodeOrder {
		if n.nodes[id].Kind == NodeOrganization {
			ids = append(ids, id)
		}
	}
	return ids
}

// Neighbors returns the adjacent node IDs in insertion order. Funding
// edges are traversable in both directions for discovery purposes.
func (n *Network) Neighbors(id string) []string {
	return n.adj[id]
}

// EdgeBetween returns the edge connecting two nodes regardless of
// direction.
func (n *Network) EdgeBetween(a, b string) (*Edge, bool) {
	e, ok := n.edges[pairKey(a, b)]
	return e, ok
}

// OrgEdges returns the org-level relationship edges (board, funding, both)
// in insertion order, excluding person affiliation edges. This is the
// projection metrics and connection summaries operate on.
func (n *Network) OrgEdges() []*Edge {
	out := make([]*Edge, 0, len(n.edgeOrder))
	for _, key := range n.edgeOrder {
		e := n.edges[key]
		if e.Kind == EdgeAffiliation {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Role reports the role a person holds at an organization, if any.
func (n *Network) Role(person, orgID string) (common.RoleKind, bool) {
	r, ok := n.roles[person][orgID]
	return r, ok
}
