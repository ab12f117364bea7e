package handlers_test

import (
	"net/http"
	"testing"
)

func TestContactCreate(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/contact", "", map[string]any{
		"name":    "Sam",
		"email":   "sam@example.com",
		"message": "How do refunds work?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["detail"] != "Thanks for getting in touch." || body["id"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(e.state.contacts) != 1 || e.state.contacts[0].Message != "How do refunds work?" {
		t.Fatalf("message not stored: %+v", e.state.contacts)
	}
}

func TestContactValidation(t *testing.T) {
	e := newEnv(t)
	tests := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{"missing message", map[string]any{"name": "Sam", "email": "sam@example.com"}, "Name, email and message are required."},
		{"bad email", map[string]any{"name": "Sam", "email": "nope", "message": "hi"}, "Enter a valid email address."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/contact", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := detailOf(t, rec); got != tt.detail {
				t.Fatalf("expected detail %q, got %q", tt.detail, got)
			}
		})
	}
}
