package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func capture() (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	old := log
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf, func() { log = old }
}

func TestInfo(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Info("reservation created", "reservation_id", 42)

	out := buf.String()
	assert.Contains(t, out, "reservation created")
	assert.Contains(t, out, "reservation_id")
}

func TestError(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Error("refund failed")

	assert.Contains(t, buf.String(), "refund failed")
}

func TestDebug(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Debug("capacity check skipped")

	assert.Contains(t, buf.String(), "capacity check skipped")
}

func TestInfof(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Infof("class %d deleted", 7)

	assert.Contains(t, buf.String(), "class 7 deleted")
}

func TestErrorf(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Errorf("migration %s failed", "0001")

	assert.Contains(t, buf.String(), "migration 0001 failed")
}

func TestWithError(t *testing.T) {
	buf, restore := capture()
	defer restore()

	WithError(assert.AnError).Info("cancel failed")

	out := buf.String()
	assert.Contains(t, out, "cancel failed")
	assert.Contains(t, out, "error")
}

func TestWithFields(t *testing.T) {
	buf, restore := capture()
	defer restore()

	WithFields(map[string]any{"athlete_id": 3, "class_id": 9}).Info("booking")

	out := buf.String()
	assert.Contains(t, out, "athlete_id")
	assert.Contains(t, out, "class_id")
}
