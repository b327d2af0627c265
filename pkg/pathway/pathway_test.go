package pathway

import (
	"reflect"
	"sort"
	"testing"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/metrics"
	"github.com/seaotterie/grantgraph/pkg/network"
	"github.com/seaotterie/grantgraph/pkg/roster"
)

// chainOrgs wires X and Y through Jane and Y and Z through Tom; X and Z
// have no direct relationship.
func chainOrgs() []common.OrganizationRecord {
	return []common.OrganizationRecord{
		{ID: "org-x", Name: "X", BoardMembers: []common.BoardMember{{Name: "Jane Smith"}}},
		{ID: "org-y", Name: "Y", BoardMembers: []common.BoardMember{{Name: "Jane Smith"}, {Name: "Tom Baker"}}},
		{ID: "org-z", Name: "Z", BoardMembers: []common.BoardMember{{Name: "Tom Baker"}}},
	}
}

func analyzeChain(t *testing.T) []common.Pathway {
	t.Helper()
	orgs := chainOrgs()
	people := roster.Extract(orgs)
	n := network.Build(orgs, people)
	return Analyze(n, metrics.InfluenceScores(people), DefaultConfig())
}

func pathwaysBetween(pathways []common.Pathway, src, dst string) []common.Pathway {
	var out []common.Pathway
	for _, p := range pathways {
		if p.SourceID == src && p.TargetID == dst {
			out = append(out, p)
		}
	}
	return out
}

func TestAnalyzeChainFirstDegree(t *testing.T) {
	t.Parallel()

	pathways := analyzeChain(t)

	xy := pathwaysBetween(pathways, "org-x", "org-y")
	if len(xy) != 1 {
		t.Fatalf("expected exactly 1 pathway org-x/org-y, got %d: %+v", len(xy), xy)
	}
	p := xy[0]
	if p.Degree != common.DegreeFirst {
		t.Fatalf("degree = %q, want first", p.Degree)
	}
	if !reflect.DeepEqual(p.Intermediaries, []string{"Jane Smith"}) {
		t.Fatalf("intermediaries = %v, want Jane Smith", p.Intermediaries)
	}
	if !reflect.DeepEqual(p.Route, []string{"org-x", "org-y"}) {
		t.Fatalf("route = %v", p.Route)
	}
	if p.Type != common.ConnDirectBoardOverlap {
		t.Fatalf("type = %q, want %q", p.Type, common.ConnDirectBoardOverlap)
	}
	if p.IntroductionDifficulty != "low" || p.AccessProbability != 0.8 {
		t.Fatalf("first-degree profile not applied: %+v", p)
	}
}

func TestAnalyzeChainSecondDegree(t *testing.T) {
	t.Parallel()

	pathways := analyzeChain(t)

	var second []common.Pathway
	for _, p := range pathwaysBetween(pathways, "org-x", "org-z") {
		if p.Degree == common.DegreeSecond {
			second = append(second, p)
		}
	}
	if len(second) != 1 {
		t.Fatalf("expected exactly 1 second-degree pathway org-x/org-z, got %d: %+v", len(second), second)
	}

	p := second[0]
	if !reflect.DeepEqual(p.Route, []string{"org-x", "org-y", "org-z"}) {
		t.Fatalf("route = %v, want bridge through org-y", p.Route)
	}
	// The realizer of the bridge is the person on the edge entering it.
	if !reflect.DeepEqual(p.Intermediaries, []string{"Jane Smith"}) {
		t.Fatalf("intermediaries = %v", p.Intermediaries)
	}
	if p.Type != common.ConnExtendedNetwork {
		t.Fatalf("type = %q, want %q", p.Type, common.ConnExtendedNetwork)
	}
}

func TestAnalyzeChainThirdDegreeRequiresPerson(t *testing.T) {
	t.Parallel()

	pathways := analyzeChain(t)

	n := 0
	for _, p := range pathwaysBetween(pathways, "org-x", "org-z") {
		if p.Degree != common.DegreeThird {
			continue
		}
		n++
		hasPerson := false
		for _, id := range p.Route[1 : len(p.Route)-1] {
			if id == "Jane Smith" || id == "Tom Baker" {
				hasPerson = true
			}
		}
		if !hasPerson {
			t.Fatalf("third-degree route %v has no person intermediary", p.Route)
		}
		if len(p.Intermediaries) == 0 {
			t.Fatalf("third-degree pathway with empty intermediaries: %+v", p)
		}
	}
	if n == 0 {
		t.Fatal("expected third-degree pathways through the person nodes")
	}
}

func TestAnalyzeSortedByStrategicValue(t *testing.T) {
	t.Parallel()

	pathways := analyzeChain(t)
	if len(pathways) == 0 {
		t.Fatal("expected pathways")
	}
	if !sort.SliceIsSorted(pathways, func(a, b int) bool {
		return pathways[a].StrategicValue > pathways[b].StrategicValue
	}) {
		t.Fatalf("pathways not sorted by strategic value: %+v", pathways)
	}
}

func TestDegreeOrderingMonotonic(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	first := cfg.Profiles[common.DegreeFirst]
	second := cfg.Profiles[common.DegreeSecond]
	third := cfg.Profiles[common.DegreeThird]

	if !(first.AccessProbability > second.AccessProbability && second.AccessProbability > third.AccessProbability) {
		t.Fatal("access probability must fall with degree")
	}
	if !(first.BaseStrategicValue > second.BaseStrategicValue && second.BaseStrategicValue > third.BaseStrategicValue) {
		t.Fatal("base strategic value must fall with degree")
	}
	if !(first.Weight > second.Weight && second.Weight > third.Weight) {
		t.Fatal("strength weight must fall with degree")
	}

	// The same intermediary scores strictly lower at each further degree.
	pathways := analyzeChain(t)
	best := make(map[common.Degree]float64)
	for _, p := range pathways {
		if p.StrategicValue > best[p.Degree] {
			best[p.Degree] = p.StrategicValue
		}
	}
	if !(best[common.DegreeFirst] > best[common.DegreeSecond] && best[common.DegreeSecond] > best[common.DegreeThird]) {
		t.Fatalf("best strategic value per degree not monotonic: %v", best)
	}
}

func TestAnalyzeDisconnectedPairYieldsNothing(t *testing.T) {
	t.Parallel()

	orgs := []common.OrganizationRecord{
		{ID: "org-a", Name: "Alpha", BoardMembers: []common.BoardMember{{Name: "Ann Lee"}}},
		{ID: "org-b", Name: "Beta", BoardMembers: []common.BoardMember{{Name: "Bob Ray"}}},
	}
	people := roster.Extract(orgs)
	n := network.Build(orgs, people)

	if got := Analyze(n, metrics.InfluenceScores(people), DefaultConfig()); len(got) != 0 {
		t.Fatalf("expected no pathways, got %+v", got)
	}
}

func TestAnalyzeRespectsPerPairCap(t *testing.T) {
	t.Parallel()

	// Five distinct shared people produce five first-degree pathways;
	// MaxPerPair=2 keeps only the top two.
	orgs := []common.OrganizationRecord{
		{ID: "org-a", Name: "Alpha", BoardMembers: []common.BoardMember{
			{Name: "P One"}, {Name: "P Two"}, {Name: "P Three"}, {Name: "P Four"}, {Name: "P Five"},
		}},
		{ID: "org-b", Name: "Beta", BoardMembers: []common.BoardMember{
			{Name: "P One"}, {Name: "P Two"}, {Name: "P Three"}, {Name: "P Four"}, {Name: "P Five"},
		}},
	}
	people := roster.Extract(orgs)
	n := network.Build(orgs, people)

	cfg := DefaultConfig()
	cfg.MaxPerPair = 2
	got := Analyze(n, metrics.InfluenceScores(people), cfg)
	if len(got) != 2 {
		t.Fatalf("expected 2 pathways after per-pair truncation, got %d", len(got))
	}
}
