package health

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHandler_healthCheck(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		checks         map[string]Pinger
		expectedStatus string
		expectedChecks map[string]string
	}{
		{
			name:           "no dependencies",
			expectedStatus: "OK",
		},
		{
			name:           "all healthy",
			checks:         map[string]Pinger{"database": ok, "cache": ok},
			expectedStatus: "OK",
			expectedChecks: map[string]string{"database": "ok", "cache": "ok"},
		},
		{
			name:           "cache down",
			checks:         map[string]Pinger{"database": ok, "cache": down},
			expectedStatus: "DEGRADED",
			expectedChecks: map[string]string{"database": "ok", "cache": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(tt.checks, slog.Default(), huma.Middlewares{})

			output, err := handler.healthCheck(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedChecks, output.Body.Checks)
		})
	}
}
