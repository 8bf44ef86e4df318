package gemini

import (
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/bruno248/ooh-terminal/internal/common"
)

// classify maps a provider failure to a ProviderError so the retry wrapper
// can decide whether another attempt is worth making. Quota exhaustion and
// transient backend failures retry; everything else is permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pe *common.ProviderError
	if errors.As(err, &pe) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &common.ProviderError{Kind: kindForStatus(apiErr.Code, apiErr.Status), Err: err}
	}

	return &common.ProviderError{Kind: kindForMessage(err.Error()), Err: err}
}

func kindForStatus(code int, status string) common.ErrorKind {
	switch {
	case code == 429 || status == "RESOURCE_EXHAUSTED":
		return common.KindRateLimited
	case code == 500 || code == 503 || status == "UNAVAILABLE" || status == "INTERNAL":
		return common.KindUnavailable
	default:
		return common.KindPermanent
	}
}

// kindForMessage is the fallback when the SDK surfaces a plain error
func kindForMessage(msg string) common.ErrorKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "429"):
		return common.KindRateLimited
	case strings.Contains(lower, "unavailable") || strings.Contains(lower, "overloaded") || strings.Contains(lower, "503"):
		return common.KindUnavailable
	default:
		return common.KindPermanent
	}
}
