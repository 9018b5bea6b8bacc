// Package notify posts audit summaries of bulk mutations to an optional
// webhook endpoint. Delivery is best-effort; failures are logged only.
package notify

import (
	"context"
	"time"

	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
	"resty.dev/v3"
)

// Summary describes one finished bulk mutation.
type Summary struct {
	Operation string `json:"operation"`
	Resource  string `json:"resource"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	RequestID string `json:"requestId,omitempty"`
}

// Notifier delivers summaries over HTTP.
type Notifier struct {
	client *resty.Client
}

// New builds a Notifier for the given webhook URL.
func New(webhookURL string) *Notifier {
	return &Notifier{
		client: resty.New().
			SetBaseURL(webhookURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(10 * time.Second),
	}
}

// Notify posts one summary. Errors are swallowed after logging so a
// slow or broken webhook never affects the API response.
func (n *Notifier) Notify(ctx context.Context, summary Summary) {
	response, err := n.client.R().
		SetContext(ctx).
		SetBody(summary).
		Post("")
	if err != nil {
		utils.Logger.Warn("Webhook delivery failed",
			zap.String(utils.FieldOperation, summary.Operation),
			zap.Error(err))
		return
	}
	if response.StatusCode() >= 400 {
		utils.Logger.Warn("Webhook rejected summary",
			zap.String(utils.FieldOperation, summary.Operation),
			zap.Int("status_code", response.StatusCode()))
		return
	}
	utils.Logger.Debug("Webhook delivered",
		zap.String(utils.FieldOperation, summary.Operation),
		zap.Int(utils.FieldTotal, summary.Total))
}
