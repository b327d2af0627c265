package queue

import (
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// AnalyzeJobMsg asks the worker to execute one queued analysis run. The
// run's parameters live in the database; the message only names the run.
type AnalyzeJobMsg struct {
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id"`
	DatasetID  string `json:"dataset_id"`
}

// PublishAnalyzeJob enqueues an analysis run for the worker.
func PublishAnalyzeJob(ch *amqp091.Channel, analysisID, datasetID string) error {
	msg := AnalyzeJobMsg{
		Message:    "Queued analysis run",
		AnalysisID: analysisID,
		DatasetID:  datasetID,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling analyze job: %w", err)
	}
	if err := PublishFIFO(ch, AnalyzeQueue, data); err != nil {
		return fmt.Errorf("publishing analyze job: %w", err)
	}
	return nil
}
