// Package store defines the persistence interface for datasets and
// analysis runs. Dataset payloads (the raw organization records) live in
// object storage; the database keeps the catalog and the run results.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Analysis run lifecycle states.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Dataset is one uploaded collection of organization records.
type Dataset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ObjectKey string    `json:"object_key"`
	OrgCount  int32     `json:"org_count"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRun is one queued or finished analysis over a dataset. Params
// and Result are opaque JSON documents owned by the analyzer layer.
type AnalysisRun struct {
	ID          string     `json:"id"`
	DatasetID   string     `json:"dataset_id"`
	Status      string     `json:"status"`
	Params      []byte     `json:"params,omitempty"`
	Result      []byte     `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Storage persists the dataset catalog and analysis runs.
type Storage interface {
	CreateDataset(ctx context.Context, d Dataset) error
	GetDataset(ctx context.Context, id string) (Dataset, error)
	ListDatasets(ctx context.Context) ([]Dataset, error)
	DeleteDataset(ctx context.Context, id string) error

	CreateAnalysis(ctx context.Context, run AnalysisRun) error
	GetAnalysis(ctx context.Context, id string) (AnalysisRun, error)
	ListAnalysesByDataset(ctx context.Context, datasetID string) ([]AnalysisRun, error)
	MarkAnalysisRunning(ctx context.Context, id string) error
	MarkAnalysisCompleted(ctx context.Context, id string, result []byte) error
	MarkAnalysisFailed(ctx context.Context, id string, message string) error
	ResetStaleAnalyses(ctx context.Context, olderThan time.Duration) ([]AnalysisRun, error)
}
