package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the type of keys this package stores in a request context.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's int64 id.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace id.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace id (32 hex characters).
	TraceIDLength = 16
)

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id. The boolean is false
// when the context carries no positive id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// SetTraceID adds a freshly generated trace id to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace id from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		slog.Error("failed to generate random trace ID, using time-based fallback",
			slog.Any("error", err),
			slog.Int("bytes_read", n))
		return fallbackTraceID(time.Now())
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID derives a trace id from the clock when crypto/rand fails.
func fallbackTraceID(now time.Time) string {
	b := make([]byte, TraceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(b[12:], uint32(now.Unix()))
	return hex.EncodeToString(b)
}
