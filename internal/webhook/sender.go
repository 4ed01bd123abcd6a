package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/models"
)

// Signature computes the hex HMAC-SHA256 of the payload with the endpoint
// secret, sent as X-Webhook-Signature so receivers can authenticate us.
func Signature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// HTTPSender posts signed JSON events and records every attempt as a
// WebhookDelivery row.
type HTTPSender struct {
	db       *gorm.DB
	log      *zap.Logger
	client   *http.Client
	insecure *http.Client
}

func NewHTTPSender(db *gorm.DB, log *zap.Logger) *HTTPSender {
	return &HTTPSender{
		db:     db,
		log:    log,
		client: &http.Client{Timeout: 10 * time.Second},
		insecure: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (s *HTTPSender) Send(ctx context.Context, ep models.WebhookEndpoint, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", ev.ID)
	if ep.Secret != "" {
		req.Header.Set("X-Webhook-Signature", Signature(ep.Secret, payload))
	}

	client := s.client
	if !ep.IsSslVerified {
		client = s.insecure
	}

	delivery := models.WebhookDelivery{
		EndpointID: ep.ID,
		EventID:    ev.ID,
		Action:     ev.Action,
		Payload:    string(payload),
	}

	resp, err := client.Do(req)
	if err != nil {
		delivery.Error = err.Error()
		s.record(&delivery)
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	delivery.StatusCode = resp.StatusCode
	if resp.StatusCode >= 300 {
		delivery.Error = fmt.Sprintf("endpoint responded %d", resp.StatusCode)
		s.record(&delivery)
		return fmt.Errorf("webhook %s: %s", ep.URL, delivery.Error)
	}

	s.record(&delivery)
	return nil
}

func (s *HTTPSender) record(delivery *models.WebhookDelivery) {
	if err := s.db.Create(delivery).Error; err != nil {
		s.log.Error("webhook delivery log write failed", zap.Error(err))
	}
}

// GormEndpointSource reads subscribed endpoints from the database.
type GormEndpointSource struct {
	db *gorm.DB
}

func NewGormEndpointSource(db *gorm.DB) *GormEndpointSource {
	return &GormEndpointSource{db: db}
}

func (s *GormEndpointSource) ActiveEndpoints(ctx context.Context, action string) ([]models.WebhookEndpoint, error) {
	var all []models.WebhookEndpoint
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&all).Error; err != nil {
		return nil, err
	}

	var out []models.WebhookEndpoint
	for _, ep := range all {
		if ep.SubscribesTo(action) {
			out = append(out, ep)
		}
	}
	return out, nil
}
