package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, WarnLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestInfoWithKV(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("gate denied", "user_id", 4, "cost", 5)

	output := buf.String()
	assert.Contains(t, output, "gate denied")
	assert.Contains(t, output, "user_id=4")
	assert.Contains(t, output, "cost=5")
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	WarnLogger = log.New(&buf, "WARN: ", 0)

	Warnf("missing cost row for %s", "PHONE")

	assert.Contains(t, buf.String(), "missing cost row for PHONE")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Errorf("test %s", "error")

	assert.Contains(t, buf.String(), "test error")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger = log.New(&buf, "DEBUG: ", 0)

	Debugf("test %s", "debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestWithKVOddArgs(t *testing.T) {
	out := withKV("msg", []interface{}{"dangling"})
	assert.Equal(t, "msg dangling", out)
}
