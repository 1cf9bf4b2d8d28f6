package llm

import (
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
)

// StatusCode extracts the HTTP status from a provider API error, or 0 when
// err carries none.
func StatusCode(err error) int {
	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return openaiErr.HTTPStatusCode
	}
	var requestErr *openai.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.HTTPStatusCode
	}
	var anthropicErr *sdk.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode
	}
	return 0
}
