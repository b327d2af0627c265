// Package export renders an AnalysisResult for delivery. Scores are kept
// at full precision everywhere else in the pipeline; the 3-decimal
// rounding documented on the result shape happens here and only here.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/seaotterie/grantgraph/pkg/common"
)

// Round3 rounds to three decimal places for presentation.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func formatScore(v float64) string {
	return strconv.FormatFloat(Round3(v), 'f', -1, 64)
}

// ConnectionsCSV writes one row per connection.
func ConnectionsCSV(conns []common.Connection) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"org_a", "org_b", "type", "strength", "shared_people"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, c := range conns {
		row := []string{
			c.OrgA,
			c.OrgB,
			string(c.Type),
			formatScore(c.Strength),
			strings.Join(c.SharedPeople, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing connection row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PathwaysCSV writes one row per pathway, route rendered as a " -> " chain.
func PathwaysCSV(pathways []common.Pathway) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"source", "target", "degree", "type", "route", "intermediaries",
		"path_strength", "access_probability", "introduction_difficulty", "strategic_value",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range pathways {
		row := []string{
			p.SourceID,
			p.TargetID,
			string(p.Degree),
			string(p.Type),
			strings.Join(p.Route, " -> "),
			strings.Join(p.Intermediaries, "; "),
			formatScore(p.PathStrength),
			formatScore(p.AccessProbability),
			p.IntroductionDifficulty,
			formatScore(p.StrategicValue),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing pathway row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ResultJSON marshals the result with all scores rounded to three
// decimals. The unrounded result stays untouched.
func ResultJSON(res *common.AnalysisResult) ([]byte, error) {
	rounded := roundResult(res)
	data, err := json.MarshalIndent(rounded, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return data, nil
}

func roundResult(res *common.AnalysisResult) *common.AnalysisResult {
	out := *res

	out.Connections = make([]common.Connection, len(res.Connections))
	for i, c := range res.Connections {
		c.Strength = Round3(c.Strength)
		out.Connections[i] = c
	}

	out.Pathways = make([]common.Pathway, len(res.Pathways))
	for i, p := range res.Pathways {
		p.PathStrength = Round3(p.PathStrength)
		p.AccessProbability = Round3(p.AccessProbability)
		p.StrategicValue = Round3(p.StrategicValue)
		out.Pathways[i] = p
	}

	out.OrganizationMetrics = make(map[string]common.NetworkMetrics, len(res.OrganizationMetrics))
	for id, m := range res.OrganizationMetrics {
		m.Betweenness = Round3(m.Betweenness)
		m.Closeness = Round3(m.Closeness)
		m.DegreeCentrality = Round3(m.DegreeCentrality)
		m.Eigenvector = Round3(m.Eigenvector)
		out.OrganizationMetrics[id] = m
	}

	out.PersonInfluence = make(map[string]common.PersonInfluence, len(res.PersonInfluence))
	for name, pi := range res.PersonInfluence {
		pi.Score = Round3(pi.Score)
		out.PersonInfluence[name] = pi
	}

	out.Density = Round3(res.Density)
	out.AverageClustering = Round3(res.AverageClustering)
	return &out
}
