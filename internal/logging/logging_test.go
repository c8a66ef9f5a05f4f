package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		wantLog bool
	}{
		{name: "debug enabled", debug: true, wantLog: true},
		{name: "debug disabled", debug: false, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.debug)
			logger.Debug("generating")

			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestNewInfoAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("server started")

	assert.Contains(t, buf.String(), "server started")
	assert.Contains(t, buf.String(), "uml")
}
