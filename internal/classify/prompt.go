package classify

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/llm"
)

// SystemInstruction constrains the model to structured output.
const SystemInstruction = "You are an expert task classifier. Respond only with valid YAML format as requested."

// Temperature is the fixed sampling temperature for classification.
const Temperature = 0.3

//go:embed templates/classify.tmpl
var templateFS embed.FS

var promptTemplate = template.Must(template.ParseFS(templateFS, "templates/classify.tmpl"))

type promptData struct {
	Title       string
	Description string
}

// BuildPrompt renders the user prompt for a task.
func BuildPrompt(title, description string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{Title: title, Description: description}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// BuildRequest assembles the chat request sent to the provider.
func BuildRequest(model, title, description string) (llm.ChatRequest, error) {
	prompt, err := BuildPrompt(title, description)
	if err != nil {
		return llm.ChatRequest{}, err
	}

	return llm.ChatRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: SystemInstruction},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: Temperature,
	}, nil
}
