package logger

import (
	"log/slog"
	"strings"
)

// Keys whose values are never written in clear.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"bearer",
	"encryption_key",
}

const redactedValue = "***REDACTED***"

// jwtPrefix is the base64url encoding of `{"` which starts every JWT header.
const jwtPrefix = "eyJ"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if v, ok := maskBearer(strVal); ok {
			return slog.String(a.Key, v)
		}

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if looksLikeJWT(strVal) {
			return slog.String(a.Key, maskValue(strVal))
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskBearer masks the credential part of an Authorization header value.
func maskBearer(value string) (string, bool) {
	const scheme = "Bearer "
	if len(value) <= len(scheme) || !strings.EqualFold(value[:len(scheme)], scheme) {
		return "", false
	}
	return value[:len(scheme)] + maskValue(value[len(scheme):]), true
}

// maskValue keeps the first and last three characters of a long value.
func maskValue(value string) string {
	if len(value) <= 12 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

func looksLikeJWT(value string) bool {
	return strings.HasPrefix(value, jwtPrefix) && strings.Count(value, ".") == 2
}

// RedactString manually redacts a string value.
// Use this when a token ends up inside a free-form message.
func RedactString(value string) string {
	if v, ok := maskBearer(value); ok {
		return v
	}
	if looksLikeJWT(value) {
		return maskValue(value)
	}
	return value
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
