package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/minhvn/taskfocus-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SummarizeStats turns dashboard aggregates into a short natural-language
// productivity summary.
func (s *AIService) SummarizeStats(ctx context.Context, stats *DashboardStats) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total tasks: %d\n", stats.TotalTasks)
	for _, status := range []models.TaskStatus{
		models.TaskStatusTodo,
		models.TaskStatusDoing,
		models.TaskStatusDone,
		models.TaskStatusExpired,
	} {
		fmt.Fprintf(&sb, "%s: %d\n", status, stats.StatusCounts[status])
	}
	fmt.Fprintf(&sb, "Total focus time: %d minutes\n", stats.TotalFocusSeconds/60)
	fmt.Fprintf(&sb, "Completed tasks per %s bucket: %v\n", stats.View, stats.CompletedBuckets)

	prompt := fmt.Sprintf(`You are a productivity assistant. Summarize the following task statistics for the user in 2-3 encouraging sentences. Mention how much focus time they logged and how many tasks they completed. Point out expired tasks only if there are any.

Statistics:
%s

Reply with plain text only, no markdown.`, sb.String())

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
