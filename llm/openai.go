package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Provider using the official openai-go SDK (chat completions).
type OpenAI struct {
	model openai.ChatModel
	opts  []option.RequestOption
}

// NewOpenAI builds an OpenAI provider. Model defaults to gpt-4o-mini when
// empty; baseURL overrides the API host for compatible gateways.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{model: openai.ChatModel(model), opts: opts}, nil
}

func (o *OpenAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}

func (o *OpenAI) GenerateChatResponse(ctx context.Context, messages []ChatMessage, systemPrompt string) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(systemPrompt))
	}
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		case "system":
			msgs = append(msgs, openai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return o.complete(ctx, msgs)
}

func (o *OpenAI) complete(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion) (string, error) {
	client := openai.NewClient(o.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
