package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestTransition_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")
	defer InitializeWithWriter(&bytes.Buffer{}, "error", "text")

	Transition("rental", "RENT-001", "ACTIVE", "COMPLETED", "itemID", "TENT-001")

	out := buf.String()
	assert.Contains(t, out, `"msg":"State transition"`)
	assert.Contains(t, out, `"id":"RENT-001"`)
	assert.Contains(t, out, `"to":"COMPLETED"`)
	assert.Contains(t, out, `"itemID":"TENT-001"`)
}

func TestMethodTracing_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "text")
	defer InitializeWithWriter(&bytes.Buffer{}, "error", "text")

	EnterMethod("rentalLedger.Create", "itemID", "TENT-001")
	ExitMethod("rentalLedger.Create")
	assert.Empty(t, buf.String())

	ExitMethodWithError("rentalLedger.Create", errors.New("item not available"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "item not available")
}

func TestStoreResult(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "text")
	defer InitializeWithWriter(&bytes.Buffer{}, "error", "text")

	StoreCall("rentals.Get", "RENT-002")
	StoreResult("rentals.Get", errors.New("rental not found"))

	out := buf.String()
	assert.Contains(t, out, "Store call failed")
	assert.Contains(t, out, "key=RENT-002")
}
