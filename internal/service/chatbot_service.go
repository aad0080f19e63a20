package service

import (
	"context"
	"strings"

	"echolearn/internal/logger"
)

const chatSystemPrompt = `You are the EchoLearn accessibility assistant. EchoLearn is a web learning platform for students with disabilities: it offers note taking with speech-to-text, PDF flashcard generation, text-to-speech reading, and an EchoCoins reward system. Answer briefly and clearly, in simple language suitable for text-to-speech reading. Only answer questions about using the platform and about accessible study habits.`

const chatMaxTokens = 500

// ChatbotService answers platform questions, via the LLM when one is
// configured and keyword rules otherwise.
type ChatbotService struct {
	llm Completer
}

func NewChatbotService(llm Completer) *ChatbotService {
	return &ChatbotService{llm: llm}
}

// Reply produces an assistant answer for one user message. The source
// is "ai" or "rules" so clients can label the answer.
func (s *ChatbotService) Reply(ctx context.Context, message string) (reply, source string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Ask me anything about using EchoLearn, and I'll do my best to help.", "rules"
	}

	if s.llm != nil && s.llm.Configured() {
		reply, err := s.llm.Complete(ctx, chatSystemPrompt, message, chatMaxTokens)
		if err == nil && strings.TrimSpace(reply) != "" {
			return strings.TrimSpace(reply), "ai"
		}
		if err != nil {
			logger.Warn("llm chat reply failed, using rule-based answer", "error", err)
		}
	}
	return ruleBasedReply(message), "rules"
}

// ruleBasedReply matches the message against known topics. The final
// fallback mirrors the in-app quick help.
func ruleBasedReply(message string) string {
	m := strings.ToLower(message)

	switch {
	case containsAny(m, "flashcard", "pdf", "upload"):
		return "To create flashcards, open the Flashcards section and upload a PDF. EchoLearn reads the document and builds up to 8 study cards for you. Each generated set also earns you 25 EchoCoins."
	case containsAny(m, "note", "speech-to-text", "dictate"):
		return "You can take notes in the Notes section. Use the microphone button to dictate with speech-to-text. Every saved note earns 10 EchoCoins, and your first note unlocks an achievement bonus."
	case containsAny(m, "coin", "echocoin", "reward", "redeem", "gift"):
		return "You earn EchoCoins for learning activities: notes, flashcards, study sessions, voice practice, and daily logins. Spend them in the Rewards section on themes, premium voices, or VISA gift cards."
	case containsAny(m, "achievement", "streak", "badge"):
		return "Achievements track your progress: your first note, ten flashcard sets, a 7-day login streak, and more. Each unlock pays a one-time coin bonus."
	case containsAny(m, "voice", "read aloud", "text-to-speech", "tts"):
		return "EchoLearn can read any note or flashcard aloud. Look for the speaker button next to your content, and adjust the voice and speed in Settings."
	case containsAny(m, "feedback", "contact", "bug", "problem"):
		return "Use the Feedback form to contact our team. We read every message, and sharing feedback earns you 50 EchoCoins."
	default:
		return "I can help with notes, flashcards, voice features, EchoCoins, and achievements. For notes: use the Notes section with speech-to-text. For flashcards: upload a PDF in the Flashcards section. For help: use the Feedback form to contact our team."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
