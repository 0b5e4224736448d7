// Package feedback composes an encouraging study summary from the
// student's own activity and asks a text-generation service to write it.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/jeeprep/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// Mistake is one struggling revision topic, by fail count.
type Mistake struct {
	Topic string
	Fails int
}

// Activity is the slice of app data the summary is written from.
type Activity struct {
	StudentName       string
	RecentlyCompleted []string
	Mistakes          []Mistake
	QuestionMistakes  []string
}

// Summary is the generated feedback, in the three sections the feedback
// page renders.
type Summary struct {
	Appreciation        string `json:"appreciation"`
	PracticeSuggestions string `json:"practice_suggestions"`
	ReviewAreas         string `json:"review_areas"`
}

// Generator produces a summary from collected activity.
type Generator interface {
	Generate(ctx context.Context, activity Activity) (Summary, error)
}

// ActivitySource is the narrow view of storage the collector needs.
type ActivitySource interface {
	RecentlyCompletedSyllabus(n int) ([]string, error)
	Mistakes() ([]domain.RevisionTopic, error)
	QuestionMistakes() ([]domain.Question, error)
}

// activityCap keeps the prompt small; the most recent or worst five of
// each list carry the signal.
const activityCap = 5

// Collect gathers the activity snapshot the generator is prompted with.
func Collect(src ActivitySource, studentName string) (Activity, error) {
	completed, err := src.RecentlyCompletedSyllabus(activityCap)
	if err != nil {
		return Activity{}, fmt.Errorf("failed to collect completed syllabus: %w", err)
	}

	mistakes, err := src.Mistakes()
	if err != nil {
		return Activity{}, fmt.Errorf("failed to collect revision mistakes: %w", err)
	}
	if len(mistakes) > activityCap {
		mistakes = mistakes[:activityCap]
	}

	wrongAnswers, err := src.QuestionMistakes()
	if err != nil {
		return Activity{}, fmt.Errorf("failed to collect question mistakes: %w", err)
	}
	if len(wrongAnswers) > activityCap {
		wrongAnswers = wrongAnswers[:activityCap]
	}

	activity := Activity{StudentName: studentName, RecentlyCompleted: completed}
	for _, m := range mistakes {
		activity.Mistakes = append(activity.Mistakes, Mistake{Topic: m.TopicName, Fails: m.RecallFails})
	}
	for _, q := range wrongAnswers {
		activity.QuestionMistakes = append(activity.QuestionMistakes, q.Text)
	}
	return activity, nil
}

// OpenAI generates summaries through the chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a generator. baseURL may be empty for the default
// endpoint.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Generate asks the model for the three feedback sections as JSON.
func (g *OpenAI) Generate(ctx context.Context, activity Activity) (Summary, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(activity)},
		},
	})
	if err != nil {
		return Summary{}, fmt.Errorf("feedback generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Summary{}, fmt.Errorf("feedback generation returned no choices")
	}
	return ParseSummary(resp.Choices[0].Message.Content)
}

const systemPrompt = `You are a friendly and encouraging AI study buddy for a student preparing for the JEE exam.
Be positive and appreciative; this app is only one of their study tools, so never judge overall performance.
Avoid discouraging language like "you are weak in" or "you failed"; prefer "it might be helpful to revisit" or "a great next step would be".
Respond with a JSON object holding exactly three string fields: "appreciation", "practice_suggestions" and "review_areas".`

// BuildPrompt renders the user's activity into the prompt body.
func BuildPrompt(activity Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The student's name is %s.\n\nRecently completed syllabus topics:\n", activity.StudentName)
	if len(activity.RecentlyCompleted) == 0 {
		b.WriteString("- (none yet)\n")
	}
	for _, topic := range activity.RecentlyCompleted {
		fmt.Fprintf(&b, "- %s\n", topic)
	}
	b.WriteString("\nRevision topics with repeated mistakes:\n")
	if len(activity.Mistakes) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, m := range activity.Mistakes {
		fmt.Fprintf(&b, "- %s (forgotten %d times)\n", m.Topic, m.Fails)
	}
	b.WriteString("\nPractice questions answered incorrectly:\n")
	if len(activity.QuestionMistakes) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, q := range activity.QuestionMistakes {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString(`
Write three sections:
1. "appreciation": 1-2 sentences praising the recent completions.
2. "practice_suggestions": suggest tackling previous-year questions for the completed topics.
3. "review_areas": gently point out 1-2 themes shared by the revision mistakes and the incorrectly answered questions, as a suggestion for what to focus on next.`)
	return b.String()
}

// ParseSummary decodes the model's JSON reply.
func ParseSummary(content string) (Summary, error) {
	var s Summary
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return Summary{}, fmt.Errorf("feedback reply was not valid JSON: %w", err)
	}
	if s.Appreciation == "" && s.PracticeSuggestions == "" && s.ReviewAreas == "" {
		return Summary{}, fmt.Errorf("feedback reply was empty")
	}
	return s, nil
}
