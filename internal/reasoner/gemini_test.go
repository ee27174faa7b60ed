package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *Instruction
		wantErr bool
	}{
		{
			name: "plain json",
			text: `{"fields": {"location": "Paris"}, "invoke_search": false, "reply": "When do you check in?"}`,
			want: &Instruction{
				Fields:       map[string]string{"location": "Paris"},
				InvokeSearch: false,
				Reply:        "When do you check in?",
			},
		},
		{
			name: "fenced json",
			text: "```json\n{\"fields\": {}, \"invoke_search\": true, \"reply\": \"Searching now.\"}\n```",
			want: &Instruction{
				Fields:       map[string]string{},
				InvokeSearch: true,
				Reply:        "Searching now.",
			},
		},
		{
			name:    "prose instead of json",
			text:    "Sure, I'll look for hotels in Paris!",
			wantErr: true,
		},
		{
			name:    "unexpected keys",
			text:    `{"fields": {}, "invoke_search": true, "hallucinated": 1}`,
			wantErr: true,
		},
		{
			name:    "empty",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstruction(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrReasoner)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Exchange{
		Message: "two adults please",
		Known:   map[string]string{"location": "Paris"},
		History: []string{"user: find me a hotel in Paris", "assistant: When do you travel?"},
	})

	assert.Contains(t, prompt, "Conversation so far:")
	assert.Contains(t, prompt, "user: find me a hotel in Paris")
	assert.Contains(t, prompt, `"location":"Paris"`)
	assert.Contains(t, prompt, "User message: two adults please")
}

func TestBuildPrompt_MinimalExchange(t *testing.T) {
	prompt := buildPrompt(Exchange{Message: "hello"})

	assert.NotContains(t, prompt, "Conversation so far:")
	assert.NotContains(t, prompt, "Fields already collected:")
	assert.Equal(t, "User message: hello", prompt)
}
