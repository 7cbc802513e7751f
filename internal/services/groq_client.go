package services

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

type ChatMessage struct {
	Role    string
	Content string
}

type ChatCompletionRequest struct {
	Model        string
	Temperature  float32
	JSONResponse bool
	Messages     []ChatMessage
}

type ChatCompletionResponse struct {
	Content string
}

// ChatCompletionClient abstracts the language-model API so tests can inject
// canned responses.
type ChatCompletionClient interface {
	Complete(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error)
}

// GroqClient talks to Groq's OpenAI-compatible chat completion endpoint.
type GroqClient struct {
	client *openai.Client
}

func NewGroqClient(httpClient *http.Client, apiKey string) *GroqClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = groqBaseURL
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return &GroqClient{client: openai.NewClientWithConfig(config)}
}

func (c *GroqClient) Complete(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	if c == nil || c.client == nil {
		return ChatCompletionResponse{}, errors.New("chat client is not configured")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages:    messages,
	}
	if req.JSONResponse {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return ChatCompletionResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return ChatCompletionResponse{}, errors.New("empty completion response")
	}
	return ChatCompletionResponse{Content: resp.Choices[0].Message.Content}, nil
}
