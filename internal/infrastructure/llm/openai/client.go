package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/resilience"
)

// Client wraps the OpenAI API for chat completions and embeddings. A client
// built without an API key stays constructible so the service can run with AI
// features disabled; its calls fail with domain.ErrModelNotConfigured.
type Client struct {
	api        *openai.Client
	chatModel  string
	embedModel string
	executor   *resilience.Executor
}

func New(apiKey, chatModel, embedModel string, executor *resilience.Executor) *Client {
	c := &Client{
		chatModel:  chatModel,
		embedModel: embedModel,
		executor:   executor,
	}
	if strings.TrimSpace(apiKey) != "" {
		c.api = openai.NewClient(apiKey)
	}
	return c
}

// NewWithBaseURL targets a non-default API endpoint. Used by tests and
// OpenAI-compatible gateways.
func NewWithBaseURL(apiKey, baseURL, chatModel, embedModel string, executor *resilience.Executor) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		chatModel:  chatModel,
		embedModel: embedModel,
		executor:   executor,
	}
}

func (c *Client) Configured() bool {
	return c.api != nil
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.api == nil {
		return "", domain.WrapError(domain.ErrModelNotConfigured, "chat completion", errors.New("missing API key"))
	}

	var content string
	call := func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Temperature: 0.2,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			return fmt.Errorf("openai chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("openai chat completion: empty choices")
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	if err := c.execute(ctx, "openai.complete", call); err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.api == nil {
		return nil, domain.WrapError(domain.ErrModelNotConfigured, "embed", errors.New("missing API key"))
	}
	if len(texts) == 0 {
		return nil, nil
	}

	var vectors [][]float32
	call := func(ctx context.Context) error {
		resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(c.embedModel),
			Input: texts,
		})
		if err != nil {
			return fmt.Errorf("openai embeddings: %w", err)
		}
		vectors = make([][]float32, 0, len(resp.Data))
		for _, d := range resp.Data {
			vectors = append(vectors, d.Embedding)
		}
		return nil
	}

	if err := c.execute(ctx, "openai.embed", call); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vectors[0], nil
}

func (c *Client) execute(ctx context.Context, operation string, call func(context.Context) error) error {
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operation, call, classifyOpenAIError)
	} else {
		err = call(ctx)
	}
	return wrapTemporaryIfNeeded(operation, err)
}
