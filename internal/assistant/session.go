package assistant

import (
	"context"
	"fmt"
	"sync"
)

// Session is a chat handle with explicit ownership: created when a
// conversation begins, closed on logout or navigation away. It keeps the
// rolling history that gives the model conversational context.
type Session struct {
	client *Client

	mu      sync.Mutex
	history []content
	closed  bool
}

// NewSession creates a fresh chat session.
func (c *Client) NewSession() *Session {
	return &Session{client: c}
}

// Send submits a user prompt and returns the assistant's reply. Prompts
// recognized as plan requests come back as a PlanReply; everything else is
// a TextReply. Failed turns are not recorded in the history.
func (s *Session) Send(ctx context.Context, prompt string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("session closed")
	}

	if looksLikePlanRequest(prompt) {
		plan, err := s.client.GeneratePlan(ctx, prompt)
		if err != nil {
			return nil, err
		}
		s.history = append(s.history,
			content{Role: "user", Parts: []part{{Text: prompt}}},
			content{Role: "model", Parts: []part{{Text: "Here is a plan: " + plan.Title}}},
		)
		return PlanReply{Plan: plan}, nil
	}

	turns := make([]content, 0, len(s.history)+1)
	turns = append(turns, s.history...)
	turns = append(turns, content{Role: "user", Parts: []part{{Text: prompt}}})

	text, err := s.client.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          turns,
	})
	if err != nil {
		return nil, err
	}

	s.history = append(s.history,
		content{Role: "user", Parts: []part{{Text: prompt}}},
		content{Role: "model", Parts: []part{{Text: text}}},
	)
	return TextReply{Text: text}, nil
}

// Close disposes of the session. Further sends fail.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.history = nil
}
