package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

// WebPushConfig VAPID credential and delivery option
type WebPushConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
	TTL        int
	Retries    int
	Timeout    time.Duration
}

type webPushProvider struct {
	cfg    WebPushConfig
	client webpush.HTTPClient
}

// NewWebPushProvider web push provider with retrying http client, 5xx response is retried
func NewWebPushProvider(cfg WebPushConfig) PushProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 86400
	}

	backoff := heimdall.NewConstantBackoff(200*time.Millisecond, 5*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(cfg.Retries),
	)
	return &webPushProvider{cfg: cfg, client: client}
}

func (p *webPushProvider) PublicKey() string {
	return p.cfg.PublicKey
}

func (p *webPushProvider) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) (status domain.PushStatus, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "WebPush:Send")
	defer func() { trace.SetError(err); trace.SetTag("status", status); trace.Finish() }()

	trace.SetTag("subscription_id", sub.ID)
	if p.cfg.PublicKey == "" || p.cfg.PrivateKey == "" {
		return domain.PushFailed, domain.ErrPushNotConfigured
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      p.client,
		Subscriber:      p.cfg.Subscriber,
		TTL:             p.cfg.TTL,
		Urgency:         webpush.UrgencyNormal,
		VAPIDPublicKey:  p.cfg.PublicKey,
		VAPIDPrivateKey: p.cfg.PrivateKey,
	})
	if err != nil {
		return domain.PushFailed, err
	}
	defer resp.Body.Close()

	trace.SetTag("response.code", resp.StatusCode)
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return domain.PushGone, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return domain.PushSent, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return domain.PushFailed, fmt.Errorf("push service responded %d: %s", resp.StatusCode, body)
}
