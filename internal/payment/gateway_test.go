package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSession(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "sess_abc", "url": "https://pay.example.com/sess_abc"})
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	sess, err := client.CreateSession([]LineItem{
		{Name: "mug", Amount: 1250, Quantity: 2},
	}, "https://shop.example.com/ok", "https://shop.example.com/cart")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.ID != "sess_abc" {
		t.Errorf("session id = %q, want sess_abc", sess.ID)
	}
	if sess.URL == "" {
		t.Error("session url is empty")
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("auth header = %q, want Bearer sk_test", gotAuth)
	}
	if gotBody["success_url"] != "https://shop.example.com/ok" {
		t.Errorf("success_url = %v", gotBody["success_url"])
	}
	lines, _ := gotBody["line_items"].([]any)
	if len(lines) != 1 {
		t.Errorf("line_items = %v, want one line", gotBody["line_items"])
	}
}

func TestCreateSessionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "card_declined", "message": "card was declined"},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	_, err := client.CreateSession(nil, "s", "c")
	if err == nil {
		t.Fatal("expected gateway error")
	}
}

func TestCreateSessionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	if _, err := client.CreateSession(nil, "s", "c"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestGetSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/sess_abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "sess_abc", "payment_status": "paid"})
	}))
	defer srv.Close()

	client := NewClient("sk_test", srv.URL)
	sess, err := client.GetSession("sess_abc")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.PaymentStatus != "paid" {
		t.Errorf("payment status = %q, want paid", sess.PaymentStatus)
	}
}
