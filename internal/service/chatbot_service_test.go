package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nilCompleter struct{}

func (nilCompleter) Configured() bool { return false }

func (nilCompleter) Complete(context.Context, string, string, int) (string, error) {
	return "", errors.New("should not be called")
}

func TestChatbot_RuleBasedTopics(t *testing.T) {
	svc := NewChatbotService(nilCompleter{})
	ctx := context.Background()

	cases := []struct {
		message string
		want    string
	}{
		{"How do I create flashcards?", "upload a PDF"},
		{"can i dictate my notes?", "speech-to-text"},
		{"what can I redeem coins for", "Rewards section"},
		{"tell me about achievements", "one-time coin bonus"},
		{"can it read aloud to me", "read any note or flashcard aloud"},
		{"I found a bug", "Feedback form"},
		{"what's the weather like", "I can help with"},
	}

	for _, tc := range cases {
		reply, source := svc.Reply(ctx, tc.message)
		assert.Equal(t, "rules", source)
		assert.Contains(t, reply, tc.want, "message: %s", tc.message)
	}
}

func TestChatbot_UsesLLMWhenConfigured(t *testing.T) {
	svc := NewChatbotService(&stubCompleter{reply: "Here is how you study."})

	reply, source := svc.Reply(context.Background(), "how should I study?")
	assert.Equal(t, "ai", source)
	assert.Equal(t, "Here is how you study.", reply)
}

func TestChatbot_FallsBackOnLLMError(t *testing.T) {
	svc := NewChatbotService(&stubCompleter{err: errors.New("down")})

	reply, source := svc.Reply(context.Background(), "How do I create flashcards?")
	assert.Equal(t, "rules", source)
	assert.Contains(t, reply, "upload a PDF")
}

func TestChatbot_EmptyMessage(t *testing.T) {
	svc := NewChatbotService(nilCompleter{})

	reply, source := svc.Reply(context.Background(), "   ")
	assert.Equal(t, "rules", source)
	assert.NotEmpty(t, reply)
}
