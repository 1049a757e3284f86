package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/test", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	if err != nil {
		t.Fatalf("Expected request to succeed, got %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Expected body read to succeed, got %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Expected JSON body, got %v (%s)", err, raw)
	}
	return resp.StatusCode, body
}

func TestJsonOKEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return JsonOK(c, "Formation ditemukan", fiber.Map{"formation_id": "abc"})
	})

	if status != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	if body["message"] != "Formation ditemukan" {
		t.Errorf("Expected message %q, got %v", "Formation ditemukan", body["message"])
	}
	if body["data"] == nil {
		t.Errorf("Expected data to be present")
	}
}

func TestJsonErrorEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusConflict, "Formasi sudah dibeli")
	})

	if status != fiber.StatusConflict {
		t.Errorf("Expected status 409, got %d", status)
	}
	if body["success"] != false {
		t.Errorf("Expected success false, got %v", body["success"])
	}
	if body["message"] != "Formasi sudah dibeli" {
		t.Errorf("Expected message %q, got %v", "Formasi sudah dibeli", body["message"])
	}
	if body["error_code"] != "CONFLICT" {
		t.Errorf("Expected error_code %q, got %v", "CONFLICT", body["error_code"])
	}
}

func TestJsonListEnvelopeWithPagination(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		items := []fiber.Map{{"formation_id": "a"}, {"formation_id": "b"}}
		return JsonList(c, "Daftar formation berhasil diambil", items, BuildPaginationFromPage(12, 1, 10))
	})

	if status != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}

	pagination, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected pagination object, got %v", body["pagination"])
	}
	if pagination["total"] != float64(12) {
		t.Errorf("Expected total 12, got %v", pagination["total"])
	}
	if pagination["total_pages"] != float64(2) {
		t.Errorf("Expected total_pages 2, got %v", pagination["total_pages"])
	}
	// count diisi dari panjang data halaman ini
	if pagination["count"] != float64(2) {
		t.Errorf("Expected count 2, got %v", pagination["count"])
	}
	if pagination["has_next"] != true {
		t.Errorf("Expected has_next true, got %v", pagination["has_next"])
	}
}

func TestFromFiberErrorEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return FromFiberError(c, fiber.NewError(fiber.StatusUnauthorized, "Anda harus login untuk membeli"))
	})

	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if body["message"] != "Anda harus login untuk membeli" {
		t.Errorf("Expected message %q, got %v", "Anda harus login untuk membeli", body["message"])
	}
	if body["error_code"] != "UNAUTHORIZED" {
		t.Errorf("Expected error_code %q, got %v", "UNAUTHORIZED", body["error_code"])
	}
}
