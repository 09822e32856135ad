package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelapp/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.ChapaConfig{
		BaseURL:   server.URL,
		SecretKey: "test-secret",
		Timeout:   2 * time.Second,
	})
}

func TestInitialize_Success(t *testing.T) {
	var gotAuth string
	var gotBody InitializeRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.chapa.co/pay/xyz","tx_ref":"gw-ref-1"}}`))
	})

	result, err := client.Initialize(context.Background(), InitializeRequest{
		Amount:   "100.00",
		Currency: "ETB",
		TxRef:    "CHAPA-AABBCCDDEEFF",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.TxRef != "CHAPA-AABBCCDDEEFF" || gotBody.Currency != "ETB" {
		t.Errorf("payload not forwarded: %+v", gotBody)
	}
	if result.CheckoutURL != "https://checkout.chapa.co/pay/xyz" {
		t.Errorf("unexpected checkout url %q", result.CheckoutURL)
	}
	if result.GatewayTxID != "gw-ref-1" {
		t.Errorf("unexpected gateway tx id %q", result.GatewayTxID)
	}
}

func TestInitialize_GatewayRejects(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"failed","message":"Invalid currency"}`))
	})

	_, err := client.Initialize(context.Background(), InitializeRequest{})

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Message != "Invalid currency" {
		t.Errorf("gateway message lost: %q", rejected.Message)
	}
}

func TestInitialize_NonSuccessEnvelopeOn200(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"failed","message":"Transaction reference already used"}`))
	})

	_, err := client.Initialize(context.Background(), InitializeRequest{})

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
}

func TestInitialize_TransportFailure(t *testing.T) {
	client := NewClient(config.ChapaConfig{
		// Nothing listens here.
		BaseURL:   "http://127.0.0.1:1",
		SecretKey: "test-secret",
		Timeout:   500 * time.Millisecond,
	})

	_, err := client.Initialize(context.Background(), InitializeRequest{})
	if err == nil {
		t.Fatal("expected an error")
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		t.Fatalf("transport failure must not look like a rejection: %v", err)
	}
}

func TestVerify_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transaction/verify/CHAPA-AABBCCDDEEFF" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{"status":"success"}}`))
	})

	result, err := client.Verify(context.Background(), "CHAPA-AABBCCDDEEFF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.GatewayStatus != "success" {
		t.Errorf("unexpected gateway status %q", result.GatewayStatus)
	}
}

func TestVerify_PassesGatewayVocabularyThrough(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{"status":"queued"}}`))
	})

	result, err := client.Verify(context.Background(), "CHAPA-AABBCCDDEEFF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.GatewayStatus != "queued" {
		t.Errorf("expected queued passed through, got %q", result.GatewayStatus)
	}
}

func TestVerify_GatewayRejects(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"failed","message":"Transaction not found"}`))
	})

	_, err := client.Verify(context.Background(), "CHAPA-000000000000")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Message != "Transaction not found" {
		t.Errorf("gateway message lost: %q", rejected.Message)
	}
}
