package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aretw0/pendant/internal/presentation/tui"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewPlainPrinter(&buf, 40)

	p.PrintReport(&domain.Report{
		ID:        "run-1",
		Behaviour: "alert",
		Result:    domain.ResultCriticalError,
		Ticks:     12,
		Visited:   []string{"wake", "wake"},
		Failure:   &domain.HaltError{Behaviour: "alert", Step: "wake", Kind: domain.FailureExhaustedRetries},
		Duration:  time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "CRITICAL_ERROR  alert")
	assert.Contains(t, out, "ticks     12")
	assert.Contains(t, out, "steps     wake → wake")
	assert.Contains(t, out, "alert halted at wake (exhausted_retries)")
	assert.NotContains(t, out, "\x1b[", "plain printer emits no escapes")
}

func TestPrintFrame(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewPlainPrinter(&buf, 80)

	p.PrintFrame([]byte{0xA5, 0x10, 0x01, 0x01, 0xAA ^ 0xA5 ^ 0x10 ^ 0x01 ^ 0x01})
	assert.Contains(t, buf.String(), "A5 10 01 01 1F")
	assert.Contains(t, buf.String(), "host → coprocessor  alert (0x10)  len=1")

	buf.Reset()
	p.PrintFrame([]byte{0x5A, 0x80})
	assert.Contains(t, buf.String(), "5A 80")
	assert.NotContains(t, buf.String(), "len=")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.NewPrinter(&buf).PrintBanner()
	assert.Contains(t, buf.String(), "|_|")
	assert.NotContains(t, buf.String(), "\x1b[")
}
