package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, 418, "teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "teapot" {
		t.Fatalf("expected error 'teapot', got %q", body.Error)
	}
}

func TestRespondErrorLogsCause(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondError(recorder, 500, "internal error", "Failed to do the thing", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Failed to do the thing") {
		t.Fatalf("expected log to include log message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestDecodeBodyRejectsInvalidJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))

	var dst struct{}
	if decodeBody(recorder, request, &dst) {
		t.Fatal("expected decodeBody to fail")
	}
	if recorder.Code != 400 {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}
}
