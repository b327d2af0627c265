package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/seaotterie/grantgraph/pkg/common"
)

func TestRound3(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{0.7777777, 0.778},
		{0.1, 0.1},
		{0, 0},
		{1.23456, 1.235},
		{-0.0015, -0.002},
	}
	for _, tc := range tests {
		if got := Round3(tc.in); got != tc.want {
			t.Fatalf("Round3(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConnectionsCSV(t *testing.T) {
	t.Parallel()

	conns := []common.Connection{
		{
			OrgA:         "org-a",
			OrgB:         "org-b",
			SharedPeople: []string{"Jane Smith", "Tom Baker"},
			Strength:     2.33333,
			Type:         common.ConnDirectBoardOverlap,
		},
	}

	data, err := ConnectionsCSV(conns)
	if err != nil {
		t.Fatalf("ConnectionsCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "org_a" || rows[0][3] != "strength" {
		t.Fatalf("header = %v", rows[0])
	}
	row := rows[1]
	if row[3] != "2.333" {
		t.Fatalf("strength cell = %q, want rounded %q", row[3], "2.333")
	}
	if row[4] != "Jane Smith; Tom Baker" {
		t.Fatalf("shared people cell = %q", row[4])
	}
}

func TestPathwaysCSV(t *testing.T) {
	t.Parallel()

	pathways := []common.Pathway{
		{
			SourceID:               "org-x",
			TargetID:               "org-z",
			Degree:                 common.DegreeSecond,
			Type:                   common.ConnExtendedNetwork,
			Route:                  []string{"org-x", "org-y", "org-z"},
			Intermediaries:         []string{"Jane Smith"},
			PathStrength:           0.39,
			AccessProbability:      0.6,
			IntroductionDifficulty: "medium",
			StrategicValue:         0.77777,
		},
	}

	data, err := PathwaysCSV(pathways)
	if err != nil {
		t.Fatalf("PathwaysCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	row := rows[1]
	if row[4] != "org-x -> org-y -> org-z" {
		t.Fatalf("route cell = %q", row[4])
	}
	if row[9] != "0.778" {
		t.Fatalf("strategic value cell = %q, want %q", row[9], "0.778")
	}
}

func TestResultJSONRoundsWithoutMutating(t *testing.T) {
	t.Parallel()

	res := &common.AnalysisResult{
		Success: true,
		Connections: []common.Connection{
			{OrgA: "org-a", OrgB: "org-b", Strength: 1.23456},
		},
		OrganizationMetrics: map[string]common.NetworkMetrics{
			"org-a": {Betweenness: 0.123456},
		},
		PersonInfluence: map[string]common.PersonInfluence{
			"Jane Smith": {Score: 1.29999},
		},
		Density: 0.666666,
	}

	data, err := ResultJSON(res)
	if err != nil {
		t.Fatalf("ResultJSON: %v", err)
	}

	var back common.AnalysisResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Connections[0].Strength != 1.235 {
		t.Fatalf("exported strength = %v, want 1.235", back.Connections[0].Strength)
	}
	if back.OrganizationMetrics["org-a"].Betweenness != 0.123 {
		t.Fatalf("exported betweenness = %v", back.OrganizationMetrics["org-a"].Betweenness)
	}
	if back.Density != 0.667 {
		t.Fatalf("exported density = %v", back.Density)
	}

	// The source result keeps full precision.
	if res.Connections[0].Strength != 1.23456 {
		t.Fatal("export mutated the input result")
	}
	if res.PersonInfluence["Jane Smith"].Score != 1.29999 {
		t.Fatal("export mutated person influence")
	}
}
