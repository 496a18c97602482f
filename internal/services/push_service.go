package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// PushService dispatches push notifications to registered FCM device tokens.
type PushService interface {
	SendToToken(ctx context.Context, token, title, body string, data map[string]string) error
}

type fcmPushService struct {
	serverKey string
	endpoint  string
	http      *http.Client
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewFCMPushService creates a push service backed by Firebase Cloud Messaging.
func NewFCMPushService(serverKey string) PushService {
	return &fcmPushService{
		serverKey: serverKey,
		endpoint:  "https://fcm.googleapis.com/fcm/send",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *fcmPushService) SendToToken(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("empty device token")
	}

	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push returned non-success status: %d", resp.StatusCode)
	}

	log.Printf("[PUSH] Title=%q, Body=%q", title, body)
	return nil
}
