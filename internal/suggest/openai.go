package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/VisionInno/tidsrapportering/internal/store"
)

// OpenAI implements Provider with a structured-output chat completion.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func generateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var matchSchema = generateSchema[Match]()

func (o *OpenAI) MatchProject(ctx context.Context, description string, projects []store.Project) (*Match, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects to match against")
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "project_match",
		Description: openai.String("Best matching project for a work description"),
		Schema:      matchSchema,
		Strict:      openai.Bool(true),
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(projects)),
			openai.UserMessage(buildUserPrompt(description)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("requesting completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	var match Match
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &match); err != nil {
		return nil, fmt.Errorf("parsing completion: %w", err)
	}
	return &match, nil
}
