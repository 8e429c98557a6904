package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.interrupted)
		})
	}
}

func TestHandleInterruptsDerivesFromParent(t *testing.T) {
	handler := NewInterruptHandler(&bytes.Buffer{})

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, true)

	// Context should not be canceled initially
	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	// Parent cancellation propagates to the derived context
	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Derived context should cancel with its parent")
	}

	// A plain cancellation is not an interrupt
	assert.False(t, handler.WasInterrupted())
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name         string
		expected     []string
		notExpected  []string
		showProgress bool
	}{
		{
			name:         "with progress",
			showProgress: true,
			expected: []string{
				"Processing interrupted!",
				"Tasks created so far are already saved",
				"See you later!",
			},
			notExpected: []string{},
		},
		{
			name:         "without progress",
			showProgress: false,
			expected: []string{
				"Processing interrupted!",
				"See you later!",
			},
			notExpected: []string{
				"Tasks created so far",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{
				writer:       &output,
				showProgress: tt.showProgress,
			}

			handler.showInterruptMessage()

			outputStr := output.String()
			for _, expected := range tt.expected {
				assert.Contains(t, outputStr, expected)
			}
			for _, notExpected := range tt.notExpected {
				assert.NotContains(t, outputStr, notExpected)
			}
		})
	}
}

func TestShowInterruptMessageOnlyOnce(t *testing.T) {
	var output bytes.Buffer
	handler := &InterruptHandler{writer: &output}

	// The signal goroutine guards the message with the interrupted flag.
	handler.mu.Lock()
	if !handler.interrupted {
		handler.interrupted = true
		handler.showInterruptMessage()
	}
	handler.mu.Unlock()

	handler.mu.Lock()
	if !handler.interrupted {
		handler.showInterruptMessage()
	}
	handler.mu.Unlock()

	assert.Equal(t, 1, bytes.Count(output.Bytes(), []byte("Processing interrupted!")))
	assert.True(t, handler.WasInterrupted())
}
