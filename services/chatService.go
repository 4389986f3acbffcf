package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/models"
)

const hfRouterURL = "https://router.huggingface.co/v1/chat/completions"

// Ordered fallback list: each model is tried in turn with its own timeout and
// the first successful response wins.
var chatModels = []string{
	"meta-llama/Llama-3.1-70B-Instruct",
	"Qwen/Qwen2.5-Coder-32B-Instruct",
}

const chatAttemptTimeout = 30 * time.Second

const fallbackReply = "I'm here for you. I'm experiencing a brief delay — please try again in a moment. " +
	"If you need immediate support, call iCall at 9152987821 or Vandrevala Foundation at 1860-2662-345. 💙"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// BuildSystemPrompt assembles the companion's system prompt from the user's
// current burnout and mood state.
func BuildSystemPrompt(user *models.User) string {
	moods, err := GetMoodHistory(user.User_id, time.Now().AddDate(0, 0, -30))
	if err != nil {
		moods = nil
	}
	// Most recent three, newest first
	recent := moods
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	scores := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		scores = append(scores, fmt.Sprintf("%d", recent[i].Score))
	}
	velocityDelta := 0
	if len(recent) >= 2 {
		velocityDelta = recent[len(recent)-1].Score - recent[len(recent)-2].Score
	}

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	university := "Unknown university"
	if user.University != nil && *user.University != "" {
		university = *user.University
	}
	moodLine := "none"
	if len(scores) > 0 {
		moodLine = strings.Join(scores, ", ")
	}

	return fmt.Sprintf(`You are MindMate AI, a compassionate mental health companion for college students.

STUDENT: %s, %s
BURNOUT: %d/100 (%s)
MOOD SCORES: %s/10, velocity: %d

RULES:
- Keep responses 2-4 sentences, warm and non-clinical
- Validate feelings before suggesting coping strategies
- Never diagnose or prescribe medication
- If burnout > 70: suggest rest, not productivity
- If mood dropping fast (velocity <= -3): be extra attentive, suggest counselor
- For crisis/self-harm mentions: provide iCall 9152987821, Vandrevala Foundation 1860-2662-345
- End with a gentle follow-up question when appropriate`,
		name, university, user.BurnoutScore, user.BurnoutRiskLevel, moodLine, velocityDelta)
}

// Chat sends the conversation to the Hugging Face router, trying each model
// in order. Every attempt is independently timed out and failure-tolerant;
// when all models fail the canned supportive reply comes back so the message
// path never errors out on the LLM.
func Chat(user *models.User, messages []models.Message, sessionType string) string {
	systemPrompt := BuildSystemPrompt(user)

	chatMessages := make([]chatMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		chatMessages = append(chatMessages, chatMessage{Role: role, Content: m.Content})
	}

	client := &http.Client{Timeout: chatAttemptTimeout}
	for _, model := range chatModels {
		reply, err := tryModel(client, model, chatMessages)
		if err != nil {
			log.Printf("HF %s error: %v", model, err)
			continue
		}
		return reply
	}
	return fallbackReply
}

func tryModel(client *http.Client, model string, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatAttemptTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfRouterURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("HF_TOKEN"))
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("status %d: %s", res.StatusCode, string(errText))
	}

	var parsed chatResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
