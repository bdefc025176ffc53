package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/test/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

var errBlocked = errors.New("telegram: bot was blocked by the user")

// fakeContext records what handlers reply.
type fakeContext struct {
	telebot.Context

	chat    *telebot.Chat
	sender  *telebot.User
	replies []string
}

func (c *fakeContext) Chat() *telebot.Chat   { return c.chat }
func (c *fakeContext) Sender() *telebot.User { return c.sender }

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.replies = append(c.replies, what.(string))
	return nil
}

func newFakeContext(chatID int64) *fakeContext {
	return &fakeContext{chat: &telebot.Chat{ID: chatID}, sender: &telebot.User{Username: "tester"}}
}

func sampleAlerts() []models.Alert {
	return []models.Alert{
		{
			ProductID:     "p1",
			ProductName:   "Venum Challenger 3.0 Gloves",
			SourceURL:     "https://www.venum.com/products/challenger",
			CurrentPrice:  decimal.NewFromInt(120),
			PreviousPrice: decimal.NewFromInt(100),
			Currency:      "JPY",
			ChangePercent: 20,
			Type:          models.PriceIncrease,
		},
		{
			ProductID:     "p2",
			ProductName:   "Box Logo Tee",
			CurrentPrice:  decimal.NewFromInt(200),
			PreviousPrice: decimal.NewFromInt(300),
			Currency:      "JPY",
			ChangePercent: -33.33,
			Type:          models.PriceDecrease,
		},
	}
}

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	for _, cmd := range []string{"/start", "/help", "/subscribe", "/unsubscribe", "/alerts"} {
		mockBot.On("Handle", cmd, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func TestStartHandler(t *testing.T) {
	t.Parallel()

	testBot := Bot{log: slog.New(slog.DiscardHandler)}
	c := newFakeContext(1)

	require.NoError(t, testBot.startHandler(c))
	require.Len(t, c.replies, 1)
	assert.Contains(t, c.replies[0], "/subscribe")
}

func TestSubscribeHandlers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		unsub      bool
		setupMocks func(m *mocks.SubscriptionRepository)
		wantReply  string
	}{
		{
			name: "subscribe new chat",
			setupMocks: func(m *mocks.SubscriptionRepository) {
				m.On("SubscribeChat", mock.Anything, int64(42)).Return(true, nil).Once()
			},
			wantReply: "You are subscribed to price alerts.",
		},
		{
			name: "subscribe twice",
			setupMocks: func(m *mocks.SubscriptionRepository) {
				m.On("SubscribeChat", mock.Anything, int64(42)).Return(false, nil).Once()
			},
			wantReply: "You are already subscribed.",
		},
		{
			name: "subscribe storage failure",
			setupMocks: func(m *mocks.SubscriptionRepository) {
				m.On("SubscribeChat", mock.Anything, int64(42)).Return(false, errors.New("db is locked")).Once()
			},
			wantReply: "Something went wrong, please try again later.",
		},
		{
			name:  "unsubscribe",
			unsub: true,
			setupMocks: func(m *mocks.SubscriptionRepository) {
				m.On("UnsubscribeChat", mock.Anything, int64(42)).Return(true, nil).Once()
			},
			wantReply: "You will no longer receive price alerts.",
		},
		{
			name:  "unsubscribe unknown chat",
			unsub: true,
			setupMocks: func(m *mocks.SubscriptionRepository) {
				m.On("UnsubscribeChat", mock.Anything, int64(42)).Return(false, nil).Once()
			},
			wantReply: "You were not subscribed.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockSubs := mocks.NewSubscriptionRepository(t)
			tc.setupMocks(mockSubs)

			testBot := Bot{log: slog.New(slog.DiscardHandler), subs: mockSubs}
			c := newFakeContext(42)

			var err error
			if tc.unsub {
				err = testBot.unsubscribeHandler(c)
			} else {
				err = testBot.subscribeHandler(c)
			}

			require.NoError(t, err)
			assert.Equal(t, []string{tc.wantReply}, c.replies)
		})
	}
}

func TestAlertsHandler(t *testing.T) {
	t.Parallel()

	cfg := AlertSettings{Threshold: 10, Lookback: 24 * time.Hour}

	t.Run("with alerts", func(t *testing.T) {
		t.Parallel()

		mockAlerts := mocks.NewAlertGenerator(t)
		mockAlerts.On("Generate", mock.Anything, 10.0, 24*time.Hour).Return(sampleAlerts(), nil).Once()

		testBot := Bot{log: slog.New(slog.DiscardHandler), alerts: mockAlerts, cfg: cfg}
		c := newFakeContext(1)

		require.NoError(t, testBot.alertsHandler(c))
		require.Len(t, c.replies, 1)
		assert.Contains(t, c.replies[0], "Venum Challenger 3.0 Gloves")
		assert.Contains(t, c.replies[0], "+20.00%")
		assert.Contains(t, c.replies[0], "-33.33%")
	})

	t.Run("no alerts", func(t *testing.T) {
		t.Parallel()

		mockAlerts := mocks.NewAlertGenerator(t)
		mockAlerts.On("Generate", mock.Anything, 10.0, 24*time.Hour).Return([]models.Alert{}, nil).Once()

		testBot := Bot{log: slog.New(slog.DiscardHandler), alerts: mockAlerts, cfg: cfg}
		c := newFakeContext(1)

		require.NoError(t, testBot.alertsHandler(c))
		assert.Equal(t, []string{"No price changes of 10.0% or more in the last 24h0m0s."}, c.replies)
	})
}

func TestNotifyAlerts(t *testing.T) {
	t.Parallel()

	t.Run("broadcast to every chat", func(t *testing.T) {
		t.Parallel()

		mockBot := mocks.NewAPI(t)
		mockSubs := mocks.NewSubscriptionRepository(t)
		mockSubs.On("GetSubscribedChats", mock.Anything).Return([]int64{1, 2}, nil).Once()
		mockBot.On("Send", &telebot.Chat{ID: 1}, mock.AnythingOfType("string")).Return(&telebot.Message{}, nil).Once()
		mockBot.On("Send", &telebot.Chat{ID: 2}, mock.AnythingOfType("string")).Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: slog.New(slog.DiscardHandler), subs: mockSubs}

		require.NoError(t, testBot.NotifyAlerts(t.Context(), sampleAlerts()))
	})

	t.Run("one chat failing does not stop the others", func(t *testing.T) {
		t.Parallel()

		mockBot := mocks.NewAPI(t)
		mockSubs := mocks.NewSubscriptionRepository(t)
		mockSubs.On("GetSubscribedChats", mock.Anything).Return([]int64{1, 2}, nil).Once()
		mockBot.On("Send", &telebot.Chat{ID: 1}, mock.Anything).Return(nil, errBlocked).Once()
		mockBot.On("Send", &telebot.Chat{ID: 2}, mock.Anything).Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: slog.New(slog.DiscardHandler), subs: mockSubs}

		err := testBot.NotifyAlerts(t.Context(), sampleAlerts())
		require.ErrorIs(t, err, errBlocked)
		assert.Contains(t, err.Error(), "chat 1")
	})

	t.Run("no subscribers", func(t *testing.T) {
		t.Parallel()

		mockSubs := mocks.NewSubscriptionRepository(t)
		mockSubs.On("GetSubscribedChats", mock.Anything).Return(nil, nil).Once()

		testBot := Bot{bot: mocks.NewAPI(t), log: slog.New(slog.DiscardHandler), subs: mockSubs}

		require.NoError(t, testBot.NotifyAlerts(t.Context(), sampleAlerts()))
	})

	t.Run("no alerts", func(t *testing.T) {
		t.Parallel()

		testBot := Bot{log: slog.New(slog.DiscardHandler), subs: mocks.NewSubscriptionRepository(t)}

		require.NoError(t, testBot.NotifyAlerts(t.Context(), nil))
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		mockSubs := mocks.NewSubscriptionRepository(t)
		mockSubs.On("GetSubscribedChats", mock.Anything).Return(nil, assert.AnError).Once()

		testBot := Bot{log: slog.New(slog.DiscardHandler), subs: mockSubs}

		require.ErrorIs(t, testBot.NotifyAlerts(t.Context(), sampleAlerts()), assert.AnError)
	})
}

func longAlerts(n int) []models.Alert {
	alerts := make([]models.Alert, n)
	for i := range alerts {
		a := sampleAlerts()[0]
		a.ProductName = fmt.Sprintf("Venum Challenger 3.0 Boxing Gloves %d %s", i, strings.Repeat("Limited Edition ", 6))
		a.SourceURL = fmt.Sprintf("https://www.venum.com/products/%d-%s", i, strings.Repeat("challenger-", 12))
		alerts[i] = a
	}
	return alerts
}

func TestFormatAlerts_SplitsByLength(t *testing.T) {
	t.Parallel()

	alerts := longAlerts(40)

	messages := formatAlerts(alerts)

	require.Greater(t, len(messages), 1)
	total := 0
	for _, msg := range messages {
		assert.LessOrEqual(t, utf8.RuneCountInString(msg), maxMessageRunes)
		total += strings.Count(msg, "▲")
	}
	assert.Equal(t, len(alerts), total)
	assert.True(t, strings.HasPrefix(messages[0], alertsHeader))
}

func TestFormatAlerts_OversizedEntry(t *testing.T) {
	t.Parallel()

	alert := sampleAlerts()[0]
	alert.ProductName = strings.Repeat("x", maxMessageRunes*2)

	messages := formatAlerts([]models.Alert{alert})

	require.Len(t, messages, 2)
	assert.Equal(t, alertsHeader, messages[0])
	assert.Equal(t, maxMessageRunes, utf8.RuneCountInString(messages[1]))
}

func TestNotifyAlerts_SendsEveryChunk(t *testing.T) {
	t.Parallel()

	alerts := longAlerts(40)
	chunks := len(formatAlerts(alerts))

	mockBot := mocks.NewAPI(t)
	mockSubs := mocks.NewSubscriptionRepository(t)
	mockSubs.On("GetSubscribedChats", mock.Anything).Return([]int64{7}, nil).Once()
	mockBot.On("Send", &telebot.Chat{ID: 7}, mock.MatchedBy(func(text string) bool {
		return utf8.RuneCountInString(text) <= maxMessageRunes
	})).Return(&telebot.Message{}, nil).Times(chunks)

	testBot := Bot{bot: mockBot, log: slog.New(slog.DiscardHandler), subs: mockSubs}

	require.NoError(t, testBot.NotifyAlerts(t.Context(), alerts))
}
