package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"echolearn/internal/domain"
	"echolearn/internal/logger"
)

const (
	maxDocumentChars  = 8000
	maxFlashcards     = 8
	minFlashcards     = 5
	llmFlashcardLimit = 2000
)

// FlashcardStore persists generated sets.
type FlashcardStore interface {
	CreateSet(ctx context.Context, set *domain.FlashcardSet, cards []domain.Flashcard) error
	ListSets(ctx context.Context, userID int64) ([]domain.FlashcardSet, error)
	GetSet(ctx context.Context, userID, setID int64) (*domain.FlashcardSetWithCards, error)
}

// Completer is the LLM surface the generator needs.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// FlashcardService turns extracted document text into stored flashcard
// sets. AI generation is attempted first; any failure falls back to the
// rule-based generator so the feature works without an API key.
type FlashcardService struct {
	store   FlashcardStore
	llm     Completer
	rewards *RewardService
}

func NewFlashcardService(store FlashcardStore, llm Completer, rewards *RewardService) *FlashcardService {
	return &FlashcardService{store: store, llm: llm, rewards: rewards}
}

// Generate builds flashcards from document text, persists the set, and
// credits the flashcard activity once.
func (s *FlashcardService) Generate(ctx context.Context, userID int64, filename, text string) (*domain.FlashcardSetWithCards, error) {
	if len(text) > maxDocumentChars {
		text = text[:maxDocumentChars]
	}

	cards, source := s.generate(ctx, filename, text)

	set := &domain.FlashcardSet{UserID: userID, Filename: filename, Source: source}
	if err := s.store.CreateSet(ctx, set, cards); err != nil {
		return nil, err
	}

	if _, err := s.rewards.AwardCoins(ctx, userID, domain.ActivityFlashcard); err != nil {
		logger.Error("failed to award flashcard coins", "error", err, "user_id", userID)
	}

	return &domain.FlashcardSetWithCards{FlashcardSet: *set, Cards: cards}, nil
}

func (s *FlashcardService) ListSets(ctx context.Context, userID int64) ([]domain.FlashcardSet, error) {
	return s.store.ListSets(ctx, userID)
}

func (s *FlashcardService) GetSet(ctx context.Context, userID, setID int64) (*domain.FlashcardSetWithCards, error) {
	return s.store.GetSet(ctx, userID, setID)
}

func (s *FlashcardService) generate(ctx context.Context, filename, text string) ([]domain.Flashcard, domain.FlashcardSource) {
	if s.llm != nil && s.llm.Configured() {
		raw, err := s.llm.Complete(ctx, "", flashcardPrompt(filename, text), llmFlashcardLimit)
		if err == nil {
			if cards := parseFlashcardJSON(raw); len(cards) > 0 {
				return cards, domain.FlashcardSourceAI
			}
			logger.Warn("llm returned no usable flashcards, falling back", "filename", filename)
		} else {
			logger.Warn("llm flashcard generation failed, falling back", "error", err, "filename", filename)
		}
	}
	return GenerateFallbackFlashcards(text, filename), domain.FlashcardSourceFallback
}

func flashcardPrompt(filename, text string) string {
	return fmt.Sprintf(`You are an expert educational content creator specializing in accessibility and inclusive learning for students with disabilities.

Create 8 high-quality flashcards from the following document content. The flashcards should be:
- Clear and concise for students with learning disabilities
- Varied in question types (definitions, concepts, applications, analysis)
- Accessible and easy to understand
- Focused on the most important information
- Suitable for text-to-speech reading

Document: %q
Content: %s

Please format your response as a JSON array with exactly this structure:
[
  {
    "question": "Clear, specific question here",
    "answer": "Comprehensive but concise answer here"
  }
]

Requirements:
1. Create exactly 8 flashcards
2. Use simple, clear language
3. Vary question types: definitions, explanations, applications, comparisons
4. Keep answers informative but not overwhelming
5. Focus on key concepts and practical knowledge
6. Make questions specific and answerable
7. Ensure accessibility for students with disabilities
8. Return ONLY the JSON array, no other text

Generate the flashcards now:`, filename, text)
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// parseFlashcardJSON pulls the first JSON array out of a model reply
// and keeps well-formed entries, capped at eight.
func parseFlashcardJSON(raw string) []domain.Flashcard {
	match := jsonArrayRe.FindString(raw)
	if match == "" {
		return nil
	}

	var parsed []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil
	}

	var cards []domain.Flashcard
	for _, p := range parsed {
		q := strings.TrimSpace(p.Question)
		a := strings.TrimSpace(p.Answer)
		if q == "" || a == "" {
			continue
		}
		cards = append(cards, domain.Flashcard{Question: q, Answer: a})
		if len(cards) == maxFlashcards {
			break
		}
	}
	return cards
}

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	nonWordRe      = regexp.MustCompile(`[^\w]`)
	actionWordRe   = regexp.MustCompile(`(?i)\b(implement|create|develop|analyze|evaluate|compare|explain|describe|identify|determine|calculate|solve|apply|use|make|build|design|plan|organize|manage|control|monitor|assess|review|study|learn|understand|know|remember|recall|recognize)\b`)
)

var commonWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "its": {}, "may": {}, "new": {},
	"now": {}, "old": {}, "see": {}, "two": {}, "who": {}, "boy": {},
	"did": {}, "man": {}, "men": {}, "put": {}, "say": {}, "she": {},
	"too": {}, "use": {},
}

var genericCards = []domain.Flashcard{
	{Question: "What are the learning objectives of this material?", Answer: "Understanding the key concepts, applying the knowledge practically, and retaining the information for future use."},
	{Question: "How should this information be studied effectively?", Answer: "Break down complex concepts, create connections between ideas, practice with examples, and review regularly."},
	{Question: "What questions should you ask yourself while studying this material?", Answer: "What are the main points? How do concepts relate to each other? What are practical applications? What might be tested?"},
	{Question: "How can you apply this knowledge in real situations?", Answer: "Look for opportunities to use these concepts in practice, discuss with others, and connect to previous knowledge."},
}

// GenerateFallbackFlashcards is the deterministic rule-based generator:
// definition cards from repeated key terms, completion cards from
// paragraph openings, a topic summary, an action-word card, and generic
// study cards padding the set to at least five. At most eight cards.
func GenerateFallbackFlashcards(text, filename string) []domain.Flashcard {
	cleanText := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	var sentences []string
	for _, s := range sentenceEndRe.Split(cleanText, -1) {
		if len(strings.TrimSpace(s)) > 30 {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}

	var paragraphs []string
	for _, p := range paragraphRe.Split(text, -1) {
		if len(strings.TrimSpace(p)) > 50 {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}

	var cards []domain.Flashcard

	terms := keyTerms(strings.Fields(cleanText), 5)
	if len(terms) > 3 {
		terms = terms[:3]
	}
	for _, term := range terms {
		if context := contextForTerm(term, sentences); context != "" {
			cards = append(cards, domain.Flashcard{
				Question: fmt.Sprintf("What is %q?", term),
				Answer:   context,
			})
		}
	}

	for i := 0; i < len(paragraphs) && i < 3; i++ {
		first := strings.TrimSpace(sentenceEndRe.Split(paragraphs[i], 2)[0])
		rest := strings.TrimSpace(strings.TrimPrefix(paragraphs[i], first))
		rest = strings.TrimLeft(rest, ".!? ")
		if first == "" || rest == "" {
			continue
		}
		if len(rest) > 200 {
			rest = rest[:200] + "..."
		}
		cards = append(cards, domain.Flashcard{
			Question: fmt.Sprintf("Complete this concept: %q...", first),
			Answer:   rest,
		})
	}

	if len(sentences) > 5 {
		cards = append(cards, domain.Flashcard{
			Question: fmt.Sprintf("What is the main topic discussed in %q?", filename),
			Answer:   fmt.Sprintf("The document covers %s and provides detailed information about these concepts.", strings.Join(mainTopics(sentences), ", ")),
		})
	}

	if actions := actionWords(sentences); len(actions) > 0 {
		if len(actions) > 5 {
			actions = actions[:5]
		}
		cards = append(cards, domain.Flashcard{
			Question: "What are the key actions or processes mentioned in this document?",
			Answer:   fmt.Sprintf("The document mentions several important processes: %s.", strings.Join(actions, ", ")),
		})
	}

	for len(cards) < minFlashcards {
		cards = append(cards, genericCards[len(cards)%len(genericCards)])
	}
	if len(cards) > maxFlashcards {
		cards = cards[:maxFlashcards]
	}
	return cards
}

// keyTerms returns up to limit lowercase terms longer than three
// characters that repeat in the text, most frequent first.
func keyTerms(words []string, limit int) []string {
	freq := make(map[string]int)
	for _, w := range words {
		clean := strings.ToLower(nonWordRe.ReplaceAllString(w, ""))
		if len(clean) > 3 {
			if _, common := commonWords[clean]; !common {
				freq[clean]++
			}
		}
	}

	var terms []string
	for term, n := range freq {
		if n > 1 {
			terms = append(terms, term)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func contextForTerm(term string, sentences []string) string {
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), strings.ToLower(term)) {
			return s
		}
	}
	return ""
}

// mainTopics picks the three most frequent non-common words longer
// than four characters from the first five sentences.
func mainTopics(sentences []string) []string {
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}

	freq := make(map[string]int)
	for _, s := range sentences {
		for _, w := range strings.Fields(s) {
			clean := strings.ToLower(nonWordRe.ReplaceAllString(w, ""))
			if len(clean) > 4 {
				if _, common := commonWords[clean]; !common {
					freq[clean]++
				}
			}
		}
	}

	topics := make([]string, 0, len(freq))
	for w := range freq {
		topics = append(topics, w)
	}
	sort.Slice(topics, func(i, j int) bool {
		if freq[topics[i]] != freq[topics[j]] {
			return freq[topics[i]] > freq[topics[j]]
		}
		return topics[i] < topics[j]
	})
	if len(topics) > 3 {
		topics = topics[:3]
	}
	return topics
}

// actionWords collects the distinct process verbs appearing in the
// text, lowercased, in first-seen order.
func actionWords(sentences []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range sentences {
		for _, m := range actionWordRe.FindAllString(s, -1) {
			low := strings.ToLower(m)
			if _, ok := seen[low]; ok {
				continue
			}
			seen[low] = struct{}{}
			out = append(out, low)
		}
	}
	return out
}
