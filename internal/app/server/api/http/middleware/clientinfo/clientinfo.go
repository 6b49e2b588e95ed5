// Package clientinfo кладёт в контекст запроса его идентификатор и IP клиента.
package clientinfo

import (
	"context"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	ipKey        contextKey = "clientIP"
)

func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader(RequestIDHeader, requestID)

		ip := ClientIP(ctx.Header("X-Forwarded-For"), ctx.Header("X-Real-IP"), ctx.RemoteAddr())

		newCtx := WithRequestID(ctx.Context(), requestID)
		newCtx = WithIP(newCtx, ip)

		next(huma.WithContext(ctx, newCtx))
	}
}

// ClientIP выбирает первый адрес из X-Forwarded-For, затем X-Real-IP, затем адрес соединения
func ClientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey, ip)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func IP(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey).(string)
	return ip
}
