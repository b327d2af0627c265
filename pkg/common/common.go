package common

// RoleKind categorizes how a person is attached to an organization.
type RoleKind string

const (
	RoleBoard RoleKind = "board"
	RoleStaff RoleKind = "staff"
)

// Affiliation ties a person to one organization under one role.
type Affiliation struct {
	OrgID    string   `json:"org_id"`
	Role     RoleKind `json:"role"`
	Position string   `json:"position,omitempty"`
}

// Person represents a unique human identified across organizations.
// Name holds the canonical normalized form, which is the identity key:
// two raw names normalizing to the same string are the same Person.
// Influence is recomputed per analysis run and never set by callers.
type Person struct {
	Name         string        `json:"name"`
	RawNames     []string      `json:"raw_names"`
	Affiliations []Affiliation `json:"affiliations"`
	Influence    float64       `json:"influence"`
}

// OrgCount returns the number of distinct organizations the person is
// affiliated with.
func (p *Person) OrgCount() int {
	seen := make(map[string]struct{}, len(p.Affiliations))
	for _, a := range p.Affiliations {
		seen[a.OrgID] = struct{}{}
	}
	return len(seen)
}

// ConnectionType classifies how two organizations are linked.
type ConnectionType string

const (
	ConnDirectBoardOverlap ConnectionType = "direct-board-overlap"
	ConnSharedLeadership   ConnectionType = "shared-leadership"
	ConnBoardToBoard       ConnectionType = "board-to-board"
	ConnPartnership        ConnectionType = "organizational-partnership"
	ConnExtendedNetwork    ConnectionType = "extended-network"
	ConnFunding            ConnectionType = "funding-relationship"
)

// Connection summarizes the direct link between exactly two organizations.
// OrgA and OrgB are stored as a sorted pair so A-B and B-A collapse into
// one record. Strength is strictly additive: one point per shared person,
// or amount-derived for funding-only links.
type Connection struct {
	OrgA         string         `json:"org_a"`
	OrgB         string         `json:"org_b"`
	SharedPeople []string       `json:"shared_people"`
	Strength     float64        `json:"strength"`
	Type         ConnectionType `json:"type"`
}

// Degree labels the hop distance of a pathway.
type Degree string

const (
	DegreeFirst  Degree = "first"
	DegreeSecond Degree = "second"
	DegreeThird  Degree = "third"
)

// Pathway is a scored route from a source organization to a target
// organization. Route lists every node ID along the path including the
// endpoints; Intermediaries lists the person names realizing the hops.
type Pathway struct {
	SourceID               string         `json:"source_id"`
	TargetID               string         `json:"target_id"`
	Degree                 Degree         `json:"degree"`
	Type                   ConnectionType `json:"type"`
	Route                  []string       `json:"route"`
	Intermediaries         []string       `json:"intermediaries"`
	PathStrength           float64        `json:"path_strength"`
	AccessProbability      float64        `json:"access_probability"`
	IntroductionDifficulty string         `json:"introduction_difficulty"`
	StrategicValue         float64        `json:"strategic_value"`
}

// NetworkMetrics holds the centrality summary for one organization.
// Isolated organizations carry an all-zero record rather than being
// omitted, so every input organization has an entry.
type NetworkMetrics struct {
	Betweenness      float64 `json:"betweenness"`
	Closeness        float64 `json:"closeness"`
	DegreeCentrality float64 `json:"degree_centrality"`
	Eigenvector      float64 `json:"eigenvector"`
	Degree           int     `json:"degree"`
	TotalConnections int     `json:"total_connections"`
}

// PersonInfluence is the per-person output record keyed by normalized name.
type PersonInfluence struct {
	Score        float64       `json:"score"`
	Affiliations []Affiliation `json:"affiliations"`
}

// NetworkGap flags an under-connected organization.
type NetworkGap struct {
	OrgID          string `json:"org_id"`
	OrgName        string `json:"org_name"`
	StrongPathways int    `json:"strong_pathways"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation"`
}

// Insights is the ranked, human-actionable report synthesized from
// connections, pathways, and metrics. Pure data; rendering belongs to
// callers.
type Insights struct {
	KeyFindings     []string     `json:"key_findings"`
	Recommendations []string     `json:"recommendations"`
	NetworkGaps     []NetworkGap `json:"network_gaps"`
}

// AnalysisResult is the full output of one analysis run. Partial results
// are retained on degraded input; Success is false only for structural
// failures (empty input, unrecoverable internal state).
type AnalysisResult struct {
	Success             bool                       `json:"success"`
	Message             string                     `json:"message,omitempty"`
	Connections         []Connection               `json:"connections"`
	Pathways            []Pathway                  `json:"pathways"`
	OrganizationMetrics map[string]NetworkMetrics  `json:"organization_metrics"`
	PersonInfluence     map[string]PersonInfluence `json:"person_influence"`
	Density             float64                    `json:"density"`
	AverageClustering   float64                    `json:"average_clustering"`
	Insights            Insights                   `json:"insights"`
}
