package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/qualimetry/qualimetry/internal/logging"
)

// testAPIKey builds a deterministic key of the given length.
func testAPIKey(length int) string {
	key := make([]byte, length)
	for i := range key {
		key[i] = 'a' + byte(i%26)
	}
	return string(key)
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{"exactly 32 chars", testAPIKey(32), true},
		{"longer than 32 chars", testAPIKey(64), true},
		{"31 chars", testAPIKey(31), false},
		{"single char", "a", false},
		{"empty", "", false},
		{"32 spaces", strings.Repeat(" ", 32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAPIKey(tt.key); got != tt.expected {
				t.Errorf("ValidateAPIKey(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"abcdefghijklmnop", "abcd****"},
		{"abcde", "abcd****"},
		{"abcd", "****"},
		{"ab", "****"},
		{"", "****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.expected {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func newAuthTestApp(apiKeys []string, enabled bool) *fiber.App {
	app := fiber.New()
	app.Use(APIKeyAuth(logging.Nop(), apiKeys, enabled))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	app := newAuthTestApp(nil, false)

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	validKey := testAPIKey(32)
	app := newAuthTestApp([]string{validKey}, true)

	tests := []struct {
		name       string
		headerName string
		headerVal  string
	}{
		{"X-API-Key header", "X-API-Key", validKey},
		{"Authorization Bearer header", "Authorization", "Bearer " + validKey},
		{"Authorization plain header", "Authorization", validKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(tt.headerName, tt.headerVal)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to test request: %v", err)
			}

			if resp.StatusCode != fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("Expected status 200, got %d, body: %s", resp.StatusCode, string(body))
			}
		})
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	app := newAuthTestApp([]string{testAPIKey(32)}, true)

	tests := []struct {
		name       string
		headerName string
		headerVal  string
	}{
		{"missing API key", "", ""},
		{"wrong API key", "X-API-Key", testAPIKey(32) + "wrong"},
		{"short API key in request", "X-API-Key", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.headerName != "" {
				req.Header.Set(tt.headerName, tt.headerVal)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to test request: %v", err)
			}

			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", resp.StatusCode)
			}
		})
	}
}

func TestAPIKeyAuth_WeakKeysRejected(t *testing.T) {
	// Keys below the minimum length never enter the valid key map, so
	// presenting one of them back must still fail.
	weakKeys := []string{"a", "short", testAPIKey(31)}
	app := newAuthTestApp(weakKeys, true)

	for _, weakKey := range weakKeys {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", weakKey)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to test request: %v", err)
		}

		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("Weak key %q (len=%d) should be rejected, got status %d",
				maskAPIKey(weakKey), len(weakKey), resp.StatusCode)
		}
	}
}
