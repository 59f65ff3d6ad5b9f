package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIAdvisor asks an OpenAI chat model for a suggestion, constraining the
// reply to the Suggestion JSON schema.
type OpenAIAdvisor struct {
	client *openai.Client
	model  string
	schema *jsonschema.Definition
}

// NewOpenAIAdvisor creates an advisor. An empty baseURL uses the public
// OpenAI endpoint.
func NewOpenAIAdvisor(apiKey, model, baseURL string) (*OpenAIAdvisor, error) {
	schema, err := jsonschema.GenerateSchemaForType(Suggestion{})
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion schema: %w", err)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIAdvisor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		schema: schema,
	}, nil
}

// Suggest implements Advisor. Every failure after input validation is
// reported as ErrSuggestionFailed; there are no retries.
func (a *OpenAIAdvisor) Suggest(ctx context.Context, taskDescription string, candidates []Candidate) (*Suggestion, error) {
	if strings.TrimSpace(taskDescription) == "" || len(candidates) == 0 {
		return nil, ErrInvalidInput
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(taskDescription, candidates),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "task_assignment_suggestion",
				Schema: a.schema,
				Strict: true,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("OpenAI API error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from model", ErrSuggestionFailed)
	}

	content := resp.Choices[0].Message.Content
	var suggestion Suggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		log.Printf("Unparseable suggestion from model: %q", content)
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}
	if suggestion.SuggestedUserID == "" || strings.TrimSpace(suggestion.Reason) == "" {
		return nil, fmt.Errorf("%w: incomplete suggestion", ErrSuggestionFailed)
	}

	return &suggestion, nil
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(taskDescription string, candidates []Candidate) string {
	var b strings.Builder

	b.WriteString("You are a task assignment expert. Given a task description and a list of users with their roles, availability and skills, suggest the most suitable user to assign the task to.\n\n")
	fmt.Fprintf(&b, "Task Description: %s\n\n", taskDescription)
	b.WriteString("Available Users:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- User ID: %s, Role: %s, Availability: %s, Skills: %s\n",
			c.UserID, c.Role, c.Availability, strings.Join(c.Skills, ", "))
	}
	b.WriteString("\nBased on the task description and the available users, which user is the most suitable to assign the task to? Explain your reasoning.\n\n")
	b.WriteString("Output the suggested user ID and the reason for your suggestion.")

	return b.String()
}
