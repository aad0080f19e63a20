package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echolearn/internal/domain"
	"echolearn/internal/http/middleware"
	"echolearn/internal/repository"
	"echolearn/internal/service"
)

// Minimal in-memory stores so the handlers can be exercised without a
// database.

type memLedger struct {
	balances map[int64]int64
}

func (m *memLedger) Balance(_ context.Context, userID int64) (int64, error) {
	return m.balances[userID], nil
}

func (m *memLedger) Credit(_ context.Context, userID, amount int64, _ string) (int64, error) {
	m.balances[userID] += amount
	return m.balances[userID], nil
}

func (m *memLedger) Debit(_ context.Context, userID, amount int64, _ string) (int64, error) {
	if m.balances[userID] < amount {
		return 0, repository.ErrInsufficientBalance
	}
	m.balances[userID] -= amount
	return m.balances[userID], nil
}

func (m *memLedger) RecentTransactions(context.Context, int64, int) ([]domain.Transaction, error) {
	return nil, nil
}

type memAchievements struct {
	byKey map[string]*domain.UserAchievement
}

func (m *memAchievements) GetOrCreate(_ context.Context, userID int64, key string) (*domain.UserAchievement, error) {
	if ua, ok := m.byKey[key]; ok {
		cp := *ua
		return &cp, nil
	}
	ua := &domain.UserAchievement{UserID: userID, Key: key}
	m.byKey[key] = ua
	cp := *ua
	return &cp, nil
}

func (m *memAchievements) Save(_ context.Context, ua *domain.UserAchievement) error {
	cp := *ua
	m.byKey[ua.Key] = &cp
	return nil
}

func (m *memAchievements) MarkCompleted(_ context.Context, _ int64, key string, current int, at time.Time) (bool, error) {
	ua, ok := m.byKey[key]
	if !ok || ua.Completed {
		return false, nil
	}
	ua.Completed = true
	ua.Current = current
	ua.CompletedAt = &at
	return true, nil
}

func (m *memAchievements) ListByUser(context.Context, int64) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	for _, ua := range m.byKey {
		out = append(out, *ua)
	}
	return out, nil
}

type memStreaks struct{}

func (memStreaks) Get(context.Context, int64) (*domain.LoginStreak, error) {
	return nil, repository.ErrNoStreak
}

func (memStreaks) Save(context.Context, *domain.LoginStreak) error { return nil }

type memUnlocks struct{}

func (memUnlocks) Set(context.Context, int64, string) error { return nil }

func (memUnlocks) IsSet(context.Context, int64, string) (bool, error) { return false, nil }

func (memUnlocks) List(context.Context, int64) ([]domain.UserUnlock, error) { return nil, nil }

type memGiftCards struct{}

func (memGiftCards) CreateRedemption(context.Context, *domain.GiftCardRedemption) error { return nil }

func (memGiftCards) CompleteRedemption(context.Context, string, *domain.GiftCard) error { return nil }

func (memGiftCards) ListRedemptions(context.Context, int64) ([]domain.GiftCardRedemption, error) {
	return nil, nil
}

func (memGiftCards) ListCards(context.Context, int64) ([]domain.GiftCard, error) { return nil, nil }

type nilCompleter struct{}

func (nilCompleter) Configured() bool { return false }

func (nilCompleter) Complete(context.Context, string, string, int) (string, error) { return "", nil }

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")
	service.InitJWT()
	gin.SetMode(gin.TestMode)

	rewards := service.NewRewardService(
		&memLedger{balances: map[int64]int64{1: 500}},
		&memAchievements{byKey: make(map[string]*domain.UserAchievement)},
		memStreaks{},
		nil,
	)
	redemptions := service.NewRedemptionService(rewards, memUnlocks{}, memGiftCards{}, nil, 0)

	h := &Handler{
		Rewards:     rewards,
		Redemptions: redemptions,
		Chatbot:     service.NewChatbotService(nilCompleter{}),
	}

	r := gin.New()
	r.GET("/activities", h.Activities)
	r.GET("/achievements", middleware.JWT(), h.Achievements)
	r.POST("/rewards/:key/preview", middleware.JWT(), h.PreviewReward)
	r.POST("/giftcards/preview", middleware.JWT(), h.PreviewGiftCard)
	r.POST("/chatbot", middleware.JWT(), h.Chat)

	token, err := service.GenerateJWT(1)
	require.NoError(t, err)
	return r, token
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestActivities_Public(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/activities", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"note"`)
	assert.Contains(t, w.Body.String(), `"daily"`)
}

func TestJWTMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/achievements", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/achievements", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAchievements_Authorized(t *testing.T) {
	r, token := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/achievements", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.AchievementFirstNote)
	assert.NotContains(t, w.Body.String(), domain.AchievementVisaRedeemer)
}

func TestPreviewReward_StatusByAffordability(t *testing.T) {
	r, token := newTestRouter(t)

	// balance 500 covers the 100-coin theme
	w := doRequest(r, http.MethodPost, "/rewards/theme/preview", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirming"`)

	// mobile costs 500 and is affordable exactly
	w = doRequest(r, http.MethodPost, "/rewards/mobile/preview", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirming"`)

	w = doRequest(r, http.MethodPost, "/rewards/jetpack/preview", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewGiftCard_Validation(t *testing.T) {
	r, token := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/giftcards/preview", token, `{"amount": 7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/giftcards/preview", token, `{"amount": 5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirming"`)

	// $25 costs 2500, balance is 500
	w = doRequest(r, http.MethodPost, "/giftcards/preview", token, `{"amount": 25}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rejected"`)
	assert.Contains(t, w.Body.String(), `"suggestions"`)
}

func TestChat_Validation(t *testing.T) {
	r, token := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/chatbot", token, `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/chatbot", token, `{"message": "how do flashcards work?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rules"`)
}
