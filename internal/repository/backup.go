package repository

import (
	"context"
	"fmt"
	"time"

	"StockAdvisor/internal/domain/models"
	drepo "StockAdvisor/internal/domain/repository"
	xhttp "StockAdvisor/pkg/http"
)

// backupPayload is the body sent to every backup target.
type backupPayload struct {
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

// NoopBackup is used when no backup target is configured.
type NoopBackup struct{}

func (NoopBackup) Backup(context.Context, models.WatchlistEntry) error { return nil }
func (NoopBackup) Name() string                                        { return "none" }

// WebhookBackup posts each added entry to an HTTP endpoint, e.g. a
// spreadsheet Apps Script deployment.
type WebhookBackup struct {
	url   string
	token string
	http  *xhttp.Client
}

var _ drepo.BackupSink = (*WebhookBackup)(nil)

func NewWebhookBackup(url, token string, timeout time.Duration) *WebhookBackup {
	return &WebhookBackup{url: url, token: token, http: xhttp.NewClient(xhttp.WithTimeout(timeout))}
}

func (w *WebhookBackup) Name() string { return "webhook" }

func (w *WebhookBackup) Backup(ctx context.Context, e models.WatchlistEntry) error {
	headers := map[string]string{}
	if w.token != "" {
		headers["Authorization"] = "Bearer " + w.token
	}
	err := w.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     w.url,
		Headers: headers,
		Body:    backupPayload{Symbol: e.Symbol, AddedAt: e.AddedAt},
	}, nil)
	if err != nil {
		return fmt.Errorf("watchlist webhook: %w", err)
	}
	return nil
}

type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaBackup publishes each added entry to a topic keyed by symbol.
type KafkaBackup struct {
	producer publisher
	topic    string
}

var _ drepo.BackupSink = (*KafkaBackup)(nil)

func NewKafkaBackup(producer publisher, topic string) *KafkaBackup {
	return &KafkaBackup{producer: producer, topic: topic}
}

func (k *KafkaBackup) Name() string { return "kafka" }

func (k *KafkaBackup) Backup(ctx context.Context, e models.WatchlistEntry) error {
	return k.producer.Publish(ctx, k.topic, []byte(e.Symbol), backupPayload{Symbol: e.Symbol, AddedAt: e.AddedAt})
}
