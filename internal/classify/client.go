package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultMaxAttempts is the total number of provider calls per classification.
	DefaultMaxAttempts = 3

	maxBackoff = 5 * time.Second
)

// Options configure a Client.
type Options struct {
	// MaxAttempts defaults to DefaultMaxAttempts when not positive.
	MaxAttempts int
	// Backoff is the base delay between attempts. Zero retries immediately.
	Backoff time.Duration
}

// Client classifies tasks with a language model. It never fails: when no
// valid classification can be obtained it returns the fallback.
type Client struct {
	factory     llm.Factory
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
}

// NewClient creates a Client that builds a provider per call with factory.
func NewClient(factory llm.Factory, opts Options, log *slog.Logger) (*Client, error) {
	if factory == nil {
		return nil, errors.New("provider factory cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	return &Client{
		factory:     factory,
		maxAttempts: attempts,
		backoff:     opts.Backoff,
		logger:      log.With("component", "classification_client"),
	}, nil
}

// Classify asks the provider described by settings to classify a task.
//
// Provider authentication failures end the attempt loop at once; every
// other failure (missing content, malformed or invalid YAML, rate limits,
// transport errors) is retried until the attempt budget is spent. A
// cancelled ctx also ends the loop. All of these yield the fallback.
func (c *Client) Classify(
	ctx context.Context,
	title, description string,
	settings config.ProviderSettings,
) domain.Classification {
	log := logger.FromContextOrDefault(ctx, c.logger).With(
		"provider", settings.Provider,
		"model", settings.Model,
	)

	completer, err := c.factory.New(settings)
	if err != nil {
		log.WarnContext(ctx, "cannot build provider client, using fallback classification",
			"error", redact.Error(err))
		return domain.FallbackClassification()
	}

	req, err := BuildRequest(settings.Model, title, description)
	if err != nil {
		log.ErrorContext(ctx, "cannot build classification request, using fallback classification",
			"error", err)
		return domain.FallbackClassification()
	}

	var (
		result  domain.Classification
		attempt int
	)

	err = retry.Do(ctx, c.backoffPolicy(), func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempt++
		attemptLog := log.With("attempt", attempt, "max_attempts", c.maxAttempts)

		classification, err := c.attempt(ctx, completer, req)
		if err == nil {
			result = classification
			return nil
		}

		kind := llm.KindOf(err)
		attemptLog.WarnContext(ctx, "classification attempt failed",
			"kind", kind.String(),
			"error", redact.Error(err))

		if kind == llm.KindAuthentication {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		log.WarnContext(ctx, "classification failed, using fallback classification",
			"attempts", attempt,
			"error", redact.Error(err))
		return domain.FallbackClassification()
	}

	log.InfoContext(ctx, "task classified",
		"attempts", attempt,
		"priority", string(result.Priority),
		"category", string(result.Category))
	return result
}

// attempt performs one provider call and turns its reply into a
// classification.
func (c *Client) attempt(
	ctx context.Context,
	completer llm.Completer,
	req llm.ChatRequest,
) (domain.Classification, error) {
	text, err := completer.Complete(ctx, req)
	if err != nil {
		return domain.Classification{}, err
	}

	payload, err := Decode(StripFences(text))
	if err != nil {
		return domain.Classification{}, err
	}

	classification, err := ToClassification(payload)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %s", err, summarize(payload))
	}

	return classification, nil
}

func (c *Client) backoffPolicy() retry.Backoff {
	base := c.backoff
	if base <= 0 {
		// go-retry rejects non-positive durations.
		base = time.Nanosecond
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(maxBackoff, b)
	return retry.WithMaxRetries(uint64(c.maxAttempts-1), b)
}

// summarize describes a rejected payload without echoing its content.
func summarize(v any) string {
	switch m := v.(type) {
	case map[string]any:
		return fmt.Sprintf("mapping with %d keys", len(m))
	case map[any]any:
		return fmt.Sprintf("mapping with %d keys", len(m))
	case []any:
		return fmt.Sprintf("list of %d items", len(m))
	case nil:
		return "empty document"
	default:
		return fmt.Sprintf("scalar %T", v)
	}
}
