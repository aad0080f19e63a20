package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echolearn/internal/domain"
)

const sampleDocument = `Photosynthesis is the process plants use to convert sunlight into energy. Photosynthesis happens in the chloroplasts of plant cells and requires water and carbon dioxide. Plants release oxygen as a byproduct of photosynthesis.

Chlorophyll is the green pigment that absorbs light energy. Chlorophyll molecules sit inside the chloroplasts and capture specific wavelengths of sunlight for the plant to use.

Students should analyze the light reactions and compare them with the dark reactions. Understanding both stages helps explain how plants create glucose and sustain life on earth.`

func TestFallback_GeneratesBetweenFiveAndEight(t *testing.T) {
	cards := GenerateFallbackFlashcards(sampleDocument, "biology.pdf")
	assert.GreaterOrEqual(t, len(cards), 5)
	assert.LessOrEqual(t, len(cards), 8)
	for _, c := range cards {
		assert.NotEmpty(t, c.Question)
		assert.NotEmpty(t, c.Answer)
	}
}

func TestFallback_DefinitionCardsFromRepeatedTerms(t *testing.T) {
	cards := GenerateFallbackFlashcards(sampleDocument, "biology.pdf")

	var found bool
	for _, c := range cards {
		if strings.Contains(c.Question, `"photosynthesis"`) {
			found = true
			assert.Contains(t, strings.ToLower(c.Answer), "photosynthesis",
				"definition answer is a sentence mentioning the term")
		}
	}
	assert.True(t, found, "repeated key term should become a definition card")
}

func TestFallback_EmptyTextFallsBackToGenericCards(t *testing.T) {
	cards := GenerateFallbackFlashcards("", "empty.pdf")
	require.Len(t, cards, 5)
	assert.Equal(t, genericCards[0].Question, cards[0].Question)
}

func TestKeyTerms_FrequencyAndFilters(t *testing.T) {
	words := strings.Fields("neuron neuron neuron synapse synapse axon the the the and cat")
	terms := keyTerms(words, 5)

	require.NotEmpty(t, terms)
	assert.Equal(t, "neuron", terms[0], "most frequent term first")
	assert.Contains(t, terms, "synapse")
	assert.NotContains(t, terms, "axon", "terms appearing once are excluded")
	assert.NotContains(t, terms, "the", "common words are excluded")
	assert.NotContains(t, terms, "cat", "short words are excluded")
}

func TestParseFlashcardJSON(t *testing.T) {
	raw := `Here are your flashcards:
[
  {"question": "What is Go?", "answer": "A programming language."},
  {"question": "  ", "answer": "dropped"},
  {"question": "What is gin?", "answer": "An HTTP framework."}
]
Hope that helps!`

	cards := parseFlashcardJSON(raw)
	require.Len(t, cards, 2)
	assert.Equal(t, "What is Go?", cards[0].Question)
	assert.Equal(t, "An HTTP framework.", cards[1].Answer)
}

func TestParseFlashcardJSON_NoArray(t *testing.T) {
	assert.Nil(t, parseFlashcardJSON("Sorry, I cannot help with that."))
	assert.Nil(t, parseFlashcardJSON(`["not", "objects"]`))
}

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Configured() bool { return true }

func (s *stubCompleter) Complete(context.Context, string, string, int) (string, error) {
	return s.reply, s.err
}

type memFlashcardStore struct {
	sets  []*domain.FlashcardSet
	cards [][]domain.Flashcard
}

func (m *memFlashcardStore) CreateSet(_ context.Context, set *domain.FlashcardSet, cards []domain.Flashcard) error {
	set.ID = int64(len(m.sets) + 1)
	m.sets = append(m.sets, set)
	m.cards = append(m.cards, cards)
	return nil
}

func (m *memFlashcardStore) ListSets(context.Context, int64) ([]domain.FlashcardSet, error) {
	var out []domain.FlashcardSet
	for _, s := range m.sets {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memFlashcardStore) GetSet(context.Context, int64, int64) (*domain.FlashcardSetWithCards, error) {
	return nil, errors.New("not implemented")
}

func TestGenerate_UsesAIWhenItParses(t *testing.T) {
	store := &memFlashcardStore{}
	rewards, ledger, _, _ := func() (*RewardService, *fakeLedger, *fakeAchievements, *fakeStreaks) {
		l := newFakeLedger()
		a := newFakeAchievements()
		s := newFakeStreaks()
		return NewRewardService(l, a, s, nil), l, a, s
	}()

	llm := &stubCompleter{reply: `[{"question": "Q1", "answer": "A1"}]`}
	svc := NewFlashcardService(store, llm, rewards)

	set, err := svc.Generate(context.Background(), 1, "doc.pdf", sampleDocument)
	require.NoError(t, err)
	assert.Equal(t, domain.FlashcardSourceAI, set.Source)
	require.Len(t, set.Cards, 1)
	assert.Equal(t, "Q1", set.Cards[0].Question)

	// flashcard activity credited once
	assert.Equal(t, int64(25), ledger.balances[1])
}

func TestGenerate_FallsBackOnLLMError(t *testing.T) {
	store := &memFlashcardStore{}
	rewards := NewRewardService(newFakeLedger(), newFakeAchievements(), newFakeStreaks(), nil)

	llm := &stubCompleter{err: errors.New("boom")}
	svc := NewFlashcardService(store, llm, rewards)

	set, err := svc.Generate(context.Background(), 1, "doc.pdf", sampleDocument)
	require.NoError(t, err)
	assert.Equal(t, domain.FlashcardSourceFallback, set.Source)
	assert.GreaterOrEqual(t, len(set.Cards), 5)
}

func TestGenerate_TruncatesLongDocuments(t *testing.T) {
	store := &memFlashcardStore{}
	rewards := NewRewardService(newFakeLedger(), newFakeAchievements(), newFakeStreaks(), nil)

	var captured string
	llm := &capturingCompleter{reply: `[{"question": "Q", "answer": "A"}]`, prompt: &captured}
	svc := NewFlashcardService(store, llm, rewards)

	long := strings.Repeat("science ", 2000)
	_, err := svc.Generate(context.Background(), 1, "big.pdf", long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(captured), maxDocumentChars+1024,
		"document text is truncated before prompting")
}

type capturingCompleter struct {
	reply  string
	prompt *string
}

func (c *capturingCompleter) Configured() bool { return true }

func (c *capturingCompleter) Complete(_ context.Context, _ string, prompt string, _ int) (string, error) {
	*c.prompt = prompt
	return c.reply, nil
}
