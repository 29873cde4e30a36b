// Package logger wraps zap with the structured logging conventions used by the API.
package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger is a thin wrapper over a zap SugaredLogger that scrubs sensitive
// key/value pairs before they are written.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
	hashSalt      string
}

// New builds a logger for the given mode ("prod"/"production" or anything
// else for development output).
func New(mode string, hashSalt string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{SugaredLogger: zapLogger.Sugar(), hashSalt: hashSalt}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, l.sanitize(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, l.sanitize(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, l.sanitize(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, l.sanitize(keysAndValues)...)
}

// With returns a child logger carrying the given fields on every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(l.sanitize(keysAndValues)...),
		hashSalt:      l.hashSalt,
	}
}

// sanitize redacts free-text wellness content and credentials, and hashes
// user identifiers so log lines cannot be joined back to a person.
func (l *Logger) sanitize(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := strings.ToLower(strings.TrimSpace(toString(kv[i])))
		out = append(out, kv[i], l.sanitizeValue(key, kv[i+1]))
	}
	return out
}

func (l *Logger) sanitizeValue(key string, val any) any {
	switch {
	case isRedactKey(key):
		return "[REDACTED]"
	case key == "user_id" || strings.HasSuffix(key, "_user_id"):
		return l.hash(val)
	default:
		return val
	}
}

func isRedactKey(key string) bool {
	for _, k := range []string{"token", "authorization", "secret", "api_key", "email", "content", "note", "text"} {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

func (l *Logger) hash(val any) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	if l.hashSalt != "" {
		_, _ = h.Write([]byte(l.hashSalt))
	}
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
