package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/bruno248/ooh-terminal/internal/common"
)

func kindOf(t *testing.T, err error) common.ErrorKind {
	t.Helper()
	var pe *common.ProviderError
	require.ErrorAs(t, err, &pe)
	return pe.Kind
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status string
		want   common.ErrorKind
	}{
		{"quota code", 429, "", common.KindRateLimited},
		{"quota status", 0, "RESOURCE_EXHAUSTED", common.KindRateLimited},
		{"backend down", 503, "UNAVAILABLE", common.KindUnavailable},
		{"internal", 500, "INTERNAL", common.KindUnavailable},
		{"bad request", 400, "INVALID_ARGUMENT", common.KindPermanent},
		{"unauthorized", 401, "UNAUTHENTICATED", common.KindPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(genai.APIError{Code: tt.code, Status: tt.status, Message: "boom"})
			assert.Equal(t, tt.want, kindOf(t, err))
		})
	}
}

func TestClassifyPlainError(t *testing.T) {
	assert.Equal(t, common.KindRateLimited, kindOf(t, classify(errors.New("quota exceeded for model"))))
	assert.Equal(t, common.KindUnavailable, kindOf(t, classify(errors.New("model is overloaded"))))
	assert.Equal(t, common.KindPermanent, kindOf(t, classify(errors.New("invalid api key"))))
}

func TestClassifyPreservesExistingKind(t *testing.T) {
	original := &common.ProviderError{Kind: common.KindUnavailable, Err: errors.New("empty response")}
	wrapped := fmt.Errorf("generate: %w", original)
	assert.Equal(t, common.KindUnavailable, kindOf(t, classify(wrapped)))
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}
