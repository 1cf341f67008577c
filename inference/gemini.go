package inference

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Part is one content fragment of a candidate. Text may be empty when the
// model returned a non-text part.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content holds the ordered parts of a candidate.
type Content struct {
	Parts []Part `json:"parts"`
}

// Candidate is one generated completion option.
type Candidate struct {
	Content Content `json:"content"`
}

// Response is the structured inference result. Zero candidates is a valid
// response; callers own the degraded-content handling.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Client is a stateless request/response gateway to a generative text model.
type Client interface {
	Generate(ctx context.Context, model, prompt string) (*Response, error)
}

// GeminiClient calls the Gemini API. It is treated as an unreliable external
// dependency: transport errors are returned as-is for the caller's host
// runtime to retry.
type GeminiClient struct {
	client *genai.Client
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed inference client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Generate sends the prompt as the sole conversational turn and maps the
// result onto the wire-shaped Response.
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (*Response, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	out := &Response{}
	for _, cand := range resp.Candidates {
		candidate := Candidate{}
		if cand != nil && cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part == nil {
					continue
				}
				candidate.Content.Parts = append(candidate.Content.Parts, Part{Text: part.Text})
			}
		}
		out.Candidates = append(out.Candidates, candidate)
	}

	return out, nil
}
