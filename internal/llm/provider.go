package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model's output.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema via its native structured output mode.
	// When Schema is nil the response Content is the raw generated text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ModelLister enumerates the models a provider can serve. Used to populate
// the authoring UI's model selector; entries are passed through as-is.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ModelInfo is one entry in a model selector.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation. For problem analysis this is a single
	// user message, optionally carrying a screenshot of the problem.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is free text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Image, when non-nil, is attached as an image-typed content part
	// alongside the text. Sending one to a text-only model is a provider
	// error, not something this layer guards against.
	Image *ImageAttachment
}

// ImageAttachment is a binary image to include with a message.
type ImageAttachment struct {
	Data     []byte
	MIMEType string // e.g. "image/png"
}

// EffectiveMIMEType returns the attachment's MIME type, defaulting to
// image/png when the caller did not supply one.
func (a *ImageAttachment) EffectiveMIMEType() string {
	if a.MIMEType == "" {
		return "image/png"
	}
	return a.MIMEType
}

// Base64 returns the standard base64 encoding of the image bytes.
func (a *ImageAttachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURI renders the attachment as a data URI, the form OpenAI-compatible
// chat APIs expect for inline images.
func (a *ImageAttachment) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.EffectiveMIMEType(), a.Base64())
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, output format
	// for Anthropic). Kebab-case, e.g. "problem-analysis".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
