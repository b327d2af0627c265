package pathway

import "github.com/seaotterie/grantgraph/pkg/common"

// DegreeProfile holds the fixed per-degree scoring parameters.
type DegreeProfile struct {
	Weight                 float64
	AccessProbability      float64
	IntroductionDifficulty string
	BaseStrategicValue     float64
}

// Config bounds the per-pair path search and carries the scoring table.
// The caps exist so each pair's cost stays bounded regardless of graph
// density; they are configuration rather than constants so small-network
// callers can lift them.
type Config struct {
	// MaxShortestPaths caps how many length-2 shortest paths are
	// considered per organization pair.
	MaxShortestPaths int
	// MaxSimplePaths caps how many third-degree simple paths are
	// considered per organization pair.
	MaxSimplePaths int
	// MaxPathLength is the hop cutoff, in edges, for third-degree
	// simple-path enumeration. Paths may route through multiple unrelated
	// people within the cutoff; that breadth is intentional and kept
	// as-is pending product review.
	MaxPathLength int
	// MaxPerPair truncates the scored pathways retained per pair.
	MaxPerPair int

	Profiles map[common.Degree]DegreeProfile
}

// DefaultConfig returns the production scoring table and search caps.
func DefaultConfig() Config {
	return Config{
		MaxShortestPaths: 5,
		MaxSimplePaths:   3,
		MaxPathLength:    5,
		MaxPerPair:       5,
		Profiles: map[common.Degree]DegreeProfile{
			common.DegreeFirst: {
				Weight:                 0.5,
				AccessProbability:      0.8,
				IntroductionDifficulty: "low",
				BaseStrategicValue:     0.9,
			},
			common.DegreeSecond: {
				Weight:                 0.3,
				AccessProbability:      0.6,
				IntroductionDifficulty: "medium",
				BaseStrategicValue:     0.6,
			},
			common.DegreeThird: {
				Weight:                 0.2,
				AccessProbability:      0.4,
				IntroductionDifficulty: "high",
				BaseStrategicValue:     0.3,
			},
		},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxShortestPaths <= 0 {
		c.MaxShortestPaths = d.MaxShortestPaths
	}
	if c.MaxSimplePaths <= 0 {
		c.MaxSimplePaths = d.MaxSimplePaths
	}
	if c.MaxPathLength <= 0 {
		c.MaxPathLength = d.MaxPathLength
	}
	if c.MaxPerPair <= 0 {
		c.MaxPerPair = d.MaxPerPair
	}
	if c.Profiles == nil {
		c.Profiles = d.Profiles
	}
	return c
}
