// internal/service/assistant/assistant.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"customer-lookup-service/internal/domain/customer"
	xerrors "customer-lookup-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Generator is a remote text-generation model.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// Service answers free-text questions about one customer's purchase history.
type Service struct {
	gen    Generator
	logger *zap.Logger
	now    func() time.Time
}

// NewService accepts a nil generator; Ask then reports ErrAssistantDisabled.
func NewService(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger, now: time.Now}
}

// Enabled reports whether a generator is configured.
func (s *Service) Enabled() bool {
	return s.gen != nil
}

// Ask sends the customer's records and the question to the model and returns its reply verbatim.
func (s *Service) Ask(ctx context.Context, name string, records []customer.CustomerRecord, question string) (string, error) {
	if s.gen == nil {
		return "", xerrors.ErrAssistantDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", xerrors.ErrInvalidInput)
	}

	prompt, err := BuildPrompt(name, records, question)
	if err != nil {
		return "", err
	}

	start := time.Now()
	answer, err := s.gen.Generate(ctx, SystemInstruction(s.now()), prompt)
	if err != nil {
		s.logger.Error("assistant request failed", zap.String("customer", name), zap.Error(err))
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	s.logger.Info("assistant answered",
		zap.String("customer", name),
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(start)),
	)
	return answer, nil
}

// SystemInstruction restricts the model to the supplied data.
func SystemInstruction(now time.Time) string {
	return strings.Join([]string{
		"You are a customer purchase-history analyst. Answer in polite, friendly Thai unless the question is in another language.",
		"- The purchase records are given as JSON.",
		"- Use only the given records; never invent data.",
		"- Currency is Thai baht (THB).",
		"- Today's date is " + now.Format("2006-01-02") + ".",
	}, "\n")
}

// BuildPrompt embeds the records as indented JSON ahead of the question.
func BuildPrompt(name string, records []customer.CustomerRecord, question string) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "These are all purchase records of the customer %q:\n", name)
	b.Write(data)
	fmt.Fprintf(&b, "\n\nQuestion from the user: %q\n\nAnalyse the data above and answer the question.", question)
	return b.String(), nil
}
