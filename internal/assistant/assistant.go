// Package assistant talks to the generative-language API: free-form study
// chat, on-demand reading-plan authoring and the daily prayer.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrUnavailable wraps any transport or upstream failure.
var ErrUnavailable = errors.New("assistant unavailable")

const systemInstruction = "You are a helpful and knowledgeable Bible study assistant. " +
	"Your purpose is to help users understand the scriptures. Answer questions clearly " +
	"and concisely, referencing Bible verses where appropriate. Maintain a respectful " +
	"and reverent tone. All your knowledge should be based on the contents of the Holy Bible."

const planInstruction = "Author a multi-day devotional reading plan for the request below. " +
	"Respond with a single JSON object shaped as " +
	`{"title":string,"duration":string,"description":string,"content":[{"day":number,"title":string,"scripture":string,"body":string,"prayer":string}]}` +
	" and nothing else."

const prayerPrompt = "Write a short, heartfelt prayer for today. Two or three sentences, " +
	"rooted in scripture, suitable for any believer. Respond with the prayer text only."

// Client calls the generative-language REST API.
type Client struct {
	base   string
	apiKey string
	model  string
	http   *http.Client
}

func New(base, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		base:   base,
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: timeout},
	}
}

// Reply is the assistant's answer: either plain text or a structured plan.
type Reply interface{ isReply() }

// TextReply is a free-form answer.
type TextReply struct {
	Text string
}

// PlanReply is a structured plan authored for a plan request.
type PlanReply struct {
	Plan models.Plan
}

func (TextReply) isReply() {}
func (PlanReply) isReply() {}

// wire types for generateContent

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.base, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate", ErrUnavailable)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// GeneratePrayer produces the daily prayer text.
func (c *Client) GeneratePrayer(ctx context.Context) (string, error) {
	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prayerPrompt}}}},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GeneratePlan asks the model to author a structured plan and assigns the
// copy a generated id.
func (c *Client) GeneratePlan(ctx context.Context, request string) (models.Plan, error) {
	text, err := c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: planInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: request}}}},
		GenerationConfig:  &generationConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return models.Plan{}, err
	}

	var plan models.Plan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return models.Plan{}, fmt.Errorf("%w: plan decode: %v", ErrUnavailable, err)
	}
	plan.ID = uuid.NewString()
	if plan.Duration == "" {
		plan.Duration = fmt.Sprintf("%d-Day Plan", len(plan.Content))
	}
	return plan, nil
}

// looksLikePlanRequest decides whether a chat prompt is asking for a
// reading plan rather than a question.
func looksLikePlanRequest(prompt string) bool {
	p := strings.ToLower(prompt)
	if !strings.Contains(p, "plan") {
		return false
	}
	for _, verb := range []string{"make", "create", "build", "write", "generate", "give", "start", "need", "want"} {
		if strings.Contains(p, verb) {
			return true
		}
	}
	return strings.Contains(p, "reading plan") || strings.Contains(p, "devotional plan")
}
