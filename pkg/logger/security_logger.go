package logger

import (
	"net/url"
	"regexp"
	"strings"

	"dicas-api/pkg/utils"
)

const maskedValue = "***"

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s"]+`)
	secretPattern = regexp.MustCompile(`(?i)(apikey|api_key|key|token|secret)([=:]\s*)[^\s&"]+`)
)

// sensitiveParams are query parameters whose values never reach the logs.
var sensitiveParams = []string{"apikey", "api_key", "key", "token", "access_token"}

// SecurityLogger provides methods to safely log sensitive information
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger wraps l; a nil l falls back to the global logger.
func NewSecurityLogger(l *Logger) *SecurityLogger {
	if l == nil {
		l = GetLogger()
	}
	return &SecurityLogger{Logger: l}
}

// MaskURL keeps scheme, host and path and replaces credential query values.
func (sl *SecurityLogger) MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "url#" + utils.FingerprintShort(rawURL)
	}

	query := parsed.Query()
	for key := range query {
		if isSensitiveParam(key) {
			query.Set(key, maskedValue)
		}
	}
	parsed.RawQuery = query.Encode()
	parsed.User = nil

	return parsed.String()
}

// MaskSecret reports whether a credential is configured without revealing it.
func (sl *SecurityLogger) MaskSecret(secret string) string {
	if secret == "" {
		return "unset"
	}
	return "set#" + utils.FingerprintShort(secret)
}

// MaskSensitiveData masks values whose keys look like URLs or credentials.
func (sl *SecurityLogger) MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for key, value := range data {
		lowerKey := strings.ToLower(key)
		str, isString := value.(string)

		switch {
		case !isString:
			masked[key] = value
		case strings.Contains(lowerKey, "key") ||
			strings.Contains(lowerKey, "token") ||
			strings.Contains(lowerKey, "secret"):
			masked[key] = sl.MaskSecret(str)
		case strings.Contains(lowerKey, "url"):
			masked[key] = sl.MaskURL(str)
		default:
			masked[key] = value
		}
	}

	return masked
}

// MaskLogMessage masks URLs and inline credentials in free text, including
// upstream error strings that echo the request URL.
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	masked := urlPattern.ReplaceAllStringFunc(message, sl.MaskURL)
	return secretPattern.ReplaceAllString(masked, "${1}${2}"+maskedValue)
}

// SafeInfo logs info with automatic sensitive data masking
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	sl.withMasked(fields).Info(sl.MaskLogMessage(msg))
}

// SafeWarn logs warning with automatic sensitive data masking
func (sl *SecurityLogger) SafeWarn(msg string, fields map[string]interface{}) {
	sl.withMasked(fields).Warn(sl.MaskLogMessage(msg))
}

// SafeError logs error with automatic sensitive data masking
func (sl *SecurityLogger) SafeError(msg string, err error, fields map[string]interface{}) {
	l := sl.withMasked(fields)
	if err != nil {
		l = l.WithField("error", sl.MaskLogMessage(err.Error()))
	}
	l.Error(sl.MaskLogMessage(msg))
}

func (sl *SecurityLogger) withMasked(fields map[string]interface{}) *Logger {
	if len(fields) == 0 {
		return sl.Logger
	}
	return sl.Logger.WithFields(sl.MaskSensitiveData(fields))
}

func isSensitiveParam(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range sensitiveParams {
		if lower == p {
			return true
		}
	}
	return false
}
