package clientinfo

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		forwarded    string
		realIP       string
		remoteAddr   string
		expectedAddr string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:5555", "203.0.113.7"},
		{"real ip", "", "198.51.100.4", "10.0.0.2:5555", "198.51.100.4"},
		{"remote addr", "", "", "192.0.2.10:41000", "192.0.2.10"},
		{"remote without port", "", "", "192.0.2.10", "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAddr, ClientIP(tt.forwarded, tt.realIP, tt.remoteAddr))
		})
	}
}

type echoOutput struct {
	Body struct {
		RequestID string `json:"request_id"`
		IP        string `json:"ip"`
	}
}

func TestMiddleware(t *testing.T) {
	_, api := humatest.New(t)

	huma.Register(api, huma.Operation{
		OperationID: "echo",
		Method:      http.MethodGet,
		Path:        "/echo",
		Middlewares: huma.Middlewares{Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*echoOutput, error) {
		out := &echoOutput{}
		out.Body.RequestID = RequestID(ctx)
		out.Body.IP = IP(ctx)
		return out, nil
	})

	resp := api.Get("/echo", "X-Request-ID: req-1", "X-Forwarded-For: 203.0.113.7")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "req-1", resp.Header().Get(RequestIDHeader))
	assert.Contains(t, resp.Body.String(), `"request_id":"req-1"`)
	assert.Contains(t, resp.Body.String(), `"ip":"203.0.113.7"`)

	resp = api.Get("/echo")
	assert.NotEmpty(t, resp.Header().Get(RequestIDHeader))
}
