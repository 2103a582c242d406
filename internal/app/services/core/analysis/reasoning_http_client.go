package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/contracts"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const reasoningRoleUser = "user"

const retryBaseDelay = 500 * time.Millisecond

type reasoningHttpClient struct {
	BaseUrl    string
	ModelID    string
	MaxRetries int
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewReasoningHttpClient builds the reasoning-service client. Invocations are
// throttled by a shared token-bucket limiter so parallel case runs cannot
// exceed the provider's rate allowance.
func NewReasoningHttpClient(reasoningConfig config.Reasoning, logger *zap.Logger) contracts.ReasoningClient {
	return &reasoningHttpClient{
		BaseUrl:    reasoningConfig.BaseUrl,
		ModelID:    reasoningConfig.ModelID,
		MaxRetries: reasoningConfig.MaxRetries,
		HTTPClient: &http.Client{
			Timeout: time.Duration(reasoningConfig.TimeoutInSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(reasoningConfig.InvocationsPerSecond), 1),
		Log:     logger,
	}
}

// Invoke posts the instruction and evidence context to the reasoning service
// and returns the raw completion. Transient failures (5xx, 429, transport
// errors) are retried with exponential backoff up to MaxRetries additional
// attempts; a context deadline always stops the retry loop immediately.
func (c *reasoningHttpClient) Invoke(ctx context.Context, systemInstruction, contextText string) (string, error) {
	requestJSON, err := json.Marshal(&requests.ReasoningInvoke{
		ModelID: c.ModelID,
		System:  systemInstruction,
		Messages: []requests.ReasoningMessage{
			{Role: reasoningRoleUser, Content: contextText},
		},
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", exceptions.ErrReasoningTimeout(ctx.Err())
			case <-time.After(delay):
			}
			c.Log.Warn("reasoningHttpClient.Invoke retrying",
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(lastErr),
			)
		}

		if err := c.Limiter.Wait(ctx); err != nil {
			return "", exceptions.ErrReasoningTimeout(err)
		}

		completion, retryable, err := c.invokeOnce(ctx, requestJSON)
		if err == nil {
			return completion, nil
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", exceptions.ErrReasoningTimeout(err)
		}
		if !retryable {
			return "", exceptions.ErrReasoningUnavailable(err)
		}
		lastErr = err
	}
	return "", exceptions.ErrReasoningUnavailable(lastErr)
}

func (c *reasoningHttpClient) invokeOnce(ctx context.Context, requestJSON []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, fmt.Sprintf("%s/invoke", c.BaseUrl), bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", false, err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		return "", true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == constvars.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("reasoning service returned status %d", resp.StatusCode)
	default:
		return "", false, fmt.Errorf("reasoning service returned status %d", resp.StatusCode)
	}

	result := new(responses.ReasoningResult)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return "", false, err
	}
	return result.Completion, false, nil
}
