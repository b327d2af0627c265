// Package analyzer is the single entry point for a full relationship
// analysis run: roster extraction, graph construction, connection and
// pathway analysis, centrality metrics, and insight synthesis, assembled
// into one AnalysisResult.
package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/insight"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/metrics"
	"github.com/seaotterie/grantgraph/pkg/network"
	"github.com/seaotterie/grantgraph/pkg/pathway"
	"github.com/seaotterie/grantgraph/pkg/roster"
)

// Params configures an Analyzer. Zero-value fields fall back to defaults.
type Params struct {
	Pathway        pathway.Config
	Metrics        metrics.Config
	IncludeFunding bool
}

type Analyzer struct {
	params Params
}

func New(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// Run executes the full pipeline over the given organization records.
// It never panics: internal panics are recovered into an unsuccessful
// result. Pathway analysis and metrics run concurrently; both read the
// graph, neither mutates it.
//
// Cost scales with graph size (pathway enumeration dominates on dense
// inputs); callers analyzing large datasets should run this off the
// request path.
func (a *Analyzer) Run(ctx context.Context, orgs []common.OrganizationRecord) (result *common.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Analyzer] recovered from panic", "panic", r)
			result = &common.AnalysisResult{
				Success: false,
				Message: fmt.Sprintf("analysis failed: %v", r),
			}
		}
	}()

	if len(orgs) == 0 {
		return &common.AnalysisResult{
			Success: false,
			Message: "no organizations provided",
		}
	}

	logger.Info("[Analyzer] starting analysis", "organizations", len(orgs))

	people := roster.Extract(orgs)
	influence := metrics.InfluenceScores(people)

	var net *network.Network
	if a.params.IncludeFunding {
		net = network.BuildWithFunding(orgs, people)
	} else {
		net = network.Build(orgs, people)
	}

	conns := net.Connections()

	var (
		pathways   []common.Pathway
		orgMetrics map[string]common.NetworkMetrics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		pathways = pathway.Analyze(net, influence, a.params.Pathway)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		orgMetrics = metrics.ComputeOrganizationMetrics(net, a.params.Metrics)
		return nil
	})
	if err := g.Wait(); err != nil {
		// Both stages only fail on context cancellation; keep whatever
		// completed and report the interruption.
		logger.Warn("[Analyzer] analysis interrupted", "error", err)
		return &common.AnalysisResult{
			Success:             false,
			Message:             fmt.Sprintf("analysis interrupted: %v", err),
			Connections:         conns,
			Pathways:            pathways,
			OrganizationMetrics: orgMetrics,
			PersonInfluence:     personInfluence(people, influence),
		}
	}

	logger.Info("[Analyzer] analysis complete",
		"connections", len(conns),
		"pathways", len(pathways),
	)

	return &common.AnalysisResult{
		Success:             true,
		Connections:         conns,
		Pathways:            pathways,
		OrganizationMetrics: orgMetrics,
		PersonInfluence:     personInfluence(people, influence),
		Density:             metrics.Density(net),
		AverageClustering:   metrics.AverageClustering(net),
		Insights:            insight.Synthesize(orgs, conns, pathways, orgMetrics),
	}
}

func personInfluence(people []common.Person, influence map[string]float64) map[string]common.PersonInfluence {
	out := make(map[string]common.PersonInfluence, len(people))
	for _, p := range people {
		out[p.Name] = common.PersonInfluence{
			Score:        influence[p.Name],
			Affiliations: p.Affiliations,
		}
	}
	return out
}
