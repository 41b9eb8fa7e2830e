package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"calidad-be/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.NotifierConfig{
		WebhookURL: url,
		APIKey:     "test-key",
	})
}

func TestClientSend(t *testing.T) {
	var mu sync.Mutex
	var received []Notification
	var apiKeys []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			t.Errorf("decode: %v", err)
		}
		mu.Lock()
		received = append(received, n)
		apiKeys = append(apiKeys, r.Header.Get("X-API-Key"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Send(Notification{
		Event:      "document.review_due",
		CompanyID:  "T1",
		DocumentID: "doc-1",
		Message:    "Review is due",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("received = %d, want 1", len(received))
	}
	if received[0].Event != "document.review_due" || received[0].DocumentID != "doc-1" {
		t.Errorf("payload = %+v", received[0])
	}
	if apiKeys[0] != "test-key" {
		t.Errorf("X-API-Key = %q", apiKeys[0])
	}
}

func TestClientSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.Send(Notification{Event: "document.updated"}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestClientSendUnconfigured(t *testing.T) {
	client := newTestClient("")
	if err := client.Send(Notification{Event: "document.updated"}); err == nil {
		t.Fatal("expected error when webhook url is empty")
	}
}

func TestProcessorDeliversAndShutsDown(t *testing.T) {
	var mu sync.Mutex
	delivered := map[string]bool{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n Notification
		json.NewDecoder(r.Body).Decode(&n)
		mu.Lock()
		delivered[n.DocumentID] = true
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	processor := NewProcessor(newTestClient(server.URL), 2)

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		if err := processor.Submit(Notification{Event: "document.updated", DocumentID: id}); err != nil {
			t.Fatalf("Submit %s: %v", id, err)
		}
	}

	// Shutdown drains the queue before returning.
	processor.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	for _, id := range ids {
		if !delivered[id] {
			t.Errorf("notification %s was not delivered", id)
		}
	}
}

func TestProcessorRejectsAfterShutdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	processor := NewProcessor(newTestClient(server.URL), 1)
	processor.Shutdown()

	if err := processor.Submit(Notification{Event: "document.updated"}); err == nil {
		t.Fatal("expected error after shutdown")
	}
}
