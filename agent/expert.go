package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Expert is a chat with a single Gemini persona.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	chat        *genai.Chat
}

// NewAdvisor returns the investment advisor persona. It can search the
// web to ground its take on tickers and market conditions.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `An investment advisor for a personal portfolio.
		Knows about asset allocation, rebalancing and position sizing.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You advise the owner of a small personal investment portfolio.
			The first message of the session is the current dashboard: holdings,
			allocation versus targets, drift and suggested rebalancing operations.
			Ground every claim about a ticker or the market with a search.
			Answer briefly and concretely; never pretend to execute trades.
		`}}},
		},
	}
}

func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends one message and returns the expert's text response.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
