package repository

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(t *testing.T, endpoint string) domain.PushSubscription {
	t.Helper()

	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return domain.PushSubscription{
		ID:       "s1",
		UserID:   "u1",
		Endpoint: endpoint,
		P256dh:   base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
		Auth:     base64.RawURLEncoding.EncodeToString(auth),
	}
}

func TestWebPushProvider_Send(t *testing.T) {
	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	var lastRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastRequest = r
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusCreated)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("upstream down"))
		}
	}))
	defer server.Close()

	provider := NewWebPushProvider(WebPushConfig{
		PublicKey: publicKey, PrivateKey: privateKey, Subscriber: "ops@coachlab.io", TTL: 3600,
	})
	assert.Equal(t, publicKey, provider.PublicKey())

	tests := []struct {
		name       string
		path       string
		wantStatus domain.PushStatus
		wantErr    bool
	}{
		{name: "Testcase #1: accepted", path: "/ok", wantStatus: domain.PushSent},
		{name: "Testcase #2: gone", path: "/gone", wantStatus: domain.PushGone},
		{name: "Testcase #3: not found is gone", path: "/missing", wantStatus: domain.PushGone},
		{name: "Testcase #4: server error", path: "/error", wantStatus: domain.PushFailed, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := provider.Send(context.Background(), newTestSubscription(t, server.URL+tt.path), []byte(`{"title":"hi"}`))
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			require.NotNil(t, lastRequest)
			assert.Equal(t, "aes128gcm", lastRequest.Header.Get("Content-Encoding"))
			assert.Equal(t, "3600", lastRequest.Header.Get("TTL"))
			assert.True(t, strings.HasPrefix(lastRequest.Header.Get("Authorization"), "vapid "))
		})
	}
}

func TestWebPushProvider_NotConfigured(t *testing.T) {
	provider := NewWebPushProvider(WebPushConfig{})
	status, err := provider.Send(context.Background(), domain.PushSubscription{Endpoint: "https://push.example.com"}, []byte("{}"))
	assert.Equal(t, domain.PushFailed, status)
	assert.ErrorIs(t, err, domain.ErrPushNotConfigured)
}
