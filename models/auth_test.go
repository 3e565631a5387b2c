// ABOUTME: Tests for auth request/response models
// ABOUTME: Verifies JSON field mappings against the upstream and browser contracts

package models

import (
	"encoding/json"
	"testing"
)

func TestLoginRequest_JSON(t *testing.T) {
	var req LoginRequest
	if err := json.Unmarshal([]byte(`{"username":"alice","password":"secret123"}`), &req); err != nil {
		t.Fatalf("Failed to unmarshal LoginRequest: %v", err)
	}

	if req.Username != "alice" {
		t.Errorf("Expected username 'alice', got %q", req.Username)
	}
	if req.Password != "secret123" {
		t.Errorf("Expected password 'secret123', got %q", req.Password)
	}
}

func TestTokenPair_JSON(t *testing.T) {
	var pair TokenPair
	if err := json.Unmarshal([]byte(`{"access":"a.b.c","refresh":"d.e.f"}`), &pair); err != nil {
		t.Fatalf("Failed to unmarshal TokenPair: %v", err)
	}

	if pair.Access != "a.b.c" || pair.Refresh != "d.e.f" {
		t.Errorf("Unexpected token pair: %+v", pair)
	}
}

func TestTokenPair_MissingRefresh(t *testing.T) {
	var pair TokenPair
	if err := json.Unmarshal([]byte(`{"access":"a.b.c"}`), &pair); err != nil {
		t.Fatalf("Failed to unmarshal TokenPair: %v", err)
	}

	if pair.Refresh != "" {
		t.Errorf("Expected empty refresh, got %q", pair.Refresh)
	}
}

func TestErrorResponse_OnlyErrorField(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Error: "Credenciais inválidas"})
	if err != nil {
		t.Fatalf("Failed to marshal ErrorResponse: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if len(parsed) != 1 {
		t.Errorf("Expected exactly one field, got %v", parsed)
	}
	if parsed["error"] != "Credenciais inválidas" {
		t.Errorf("Expected error message, got %v", parsed["error"])
	}
}

func TestMessageResponse_JSON(t *testing.T) {
	data, err := json.Marshal(MessageResponse{Message: "Logout realizado com sucesso"})
	if err != nil {
		t.Fatalf("Failed to marshal MessageResponse: %v", err)
	}

	if string(data) != `{"message":"Logout realizado com sucesso"}` {
		t.Errorf("Unexpected body: %s", data)
	}
}
