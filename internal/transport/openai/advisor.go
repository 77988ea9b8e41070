package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/advice"
)

const advisorSystemPrompt = "Je bent de behulpzame zoekassistent van een Nederlandse kunst- en " +
	"cadeauwinkel. Antwoord in maximaal twee korte zinnen, vriendelijk en zonder opsommingen."

// Advisor generates advisory messages via the chat completion API.
// It implements advice.Provider; the composed fallback handles its failures.
type Advisor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// AdvisorConfig holds the advice generation settings.
type AdvisorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewAdvisor creates a chat-completion advice provider.
func NewAdvisor(cfg *AdvisorConfig) *Advisor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Advisor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Generate asks the model for a short message about the search outcome.
func (a *Advisor) Generate(ctx context.Context, req advice.Request) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		MaxTokens:   120,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: advisorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func userPrompt(req advice.Request) string {
	var b strings.Builder

	if req.Mode == advice.ModeEmpty {
		fmt.Fprintf(&b, "De zoekopdracht %q leverde geen resultaten op. ", req.Query)
		b.WriteString("Stel een vervolgvraag die de klant helpt de zoekopdracht aan te passen.")
	} else {
		fmt.Fprintf(&b, "De zoekopdracht %q leverde %d resultaten op. ", req.Query, req.ResultCount)
		b.WriteString("Schrijf een korte, positieve samenvatting voor de klant.")
	}

	if len(req.Types) > 0 {
		fmt.Fprintf(&b, " Beschikbare producttypes: %s.", strings.Join(req.Types, ", "))
	}
	if len(req.Themes) > 0 {
		fmt.Fprintf(&b, " Thema's in het assortiment: %s.", strings.Join(req.Themes, ", "))
	}

	return b.String()
}
