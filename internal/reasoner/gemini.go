package reasoner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// systemPrompt instructs the model to act as the slot-filling reasoner and
// answer with the Instruction JSON only.
const systemPrompt = `You are the decision engine of a hotel-booking assistant.
From the user's message, extract hotel search criteria and decide whether to run the search.

Respond with a single JSON object and nothing else:
{"fields": {<extracted field values>}, "invoke_search": <bool>, "reply": "<next message to the user>"}

Allowed field names: location, check_in_date, check_out_date, adults, children, children_ages, rooms.
Dates must be YYYY-MM-DD. children_ages is a comma-separated list whose length must equal children.
Set invoke_search to true only when location, check_in_date and check_out_date are all known
and, if children > 0, their ages are known. Otherwise ask for exactly one missing field in reply.`

// Gemini implements Reasoner using Google's Generative AI API.
// The API key and model are passed in explicitly; the client holds no
// package-level state.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini reasoner with the given credential and model
// name. An empty model name selects DefaultModel.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Decide implements Reasoner.
func (g *Gemini) Decide(ctx context.Context, exchange Exchange) (*Instruction, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(exchange)))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generate: %v", domain.ErrReasoner, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return ParseInstruction(text)
}

// buildPrompt renders the exchange as the turn prompt.
func buildPrompt(exchange Exchange) string {
	var sb strings.Builder

	if len(exchange.History) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, line := range exchange.History {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	if len(exchange.Known) > 0 {
		sb.WriteString("Fields already collected:\n")
		known, _ := json.Marshal(exchange.Known)
		sb.Write(known)
		sb.WriteString("\n\n")
	}

	sb.WriteString("User message: ")
	sb.WriteString(exchange.Message)
	return sb.String()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty gemini response", domain.ErrReasoner)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// ParseInstruction decodes the model's JSON output into an Instruction.
// Markdown code fences around the JSON are tolerated; anything else that is
// not the expected object fails with a wrapped ErrReasoner.
func ParseInstruction(text string) (*Instruction, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var instruction Instruction
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&instruction); err != nil {
		return nil, fmt.Errorf("%w: malformed instruction %q: %v", domain.ErrReasoner, text, err)
	}
	return &instruction, nil
}

// Ensure Gemini implements the port at compile time.
var _ Reasoner = (*Gemini)(nil)
