package middleware

import (
	"context"
	"regexp"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/ports"
)

type piiMiddleware struct {
	next     ports.ResponseStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of answer
// fields whose ID matches one of the patterns before they reach the
// backing store. Masking is destructive: use it only when the masked
// fields are not needed to compose the outbound message, e.g. a store
// kept purely for attendance counting.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ResponseStore) ports.ResponseStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, resp *domain.Response) error {
	// Clone first so the in-memory response used by the pipeline keeps
	// its real values.
	cloned := resp.Clone()
	maskAnswers(cloned.Answers, m.patterns)
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Response, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskAnswers(answers domain.Answers, patterns []*regexp.Regexp) {
	for fieldID, value := range answers {
		for _, p := range patterns {
			if p.MatchString(fieldID) {
				if value.Text != "" {
					value.Text = "***"
				}
				answers[fieldID] = value
				break
			}
		}
	}
}
