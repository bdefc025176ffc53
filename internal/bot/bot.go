package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/repository/sqlite"
	"gopkg.in/telebot.v4"
)

const requestTimeout = 30 * time.Second

// AlertSettings are used by the /alerts command.
type AlertSettings struct {
	Threshold float64
	Lookback  time.Duration
}

// Bot contains the bot API instance and other information.
type Bot struct {
	bot    API
	log    *slog.Logger
	subs   sqlite.SubscriptionRepository
	alerts AlertGenerator
	cfg    AlertSettings
}

func NewBot(
	log *slog.Logger,
	token string,
	poller time.Duration,
	subs sqlite.SubscriptionRepository,
	alerts AlertGenerator,
	cfg AlertSettings,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, subs: subs, alerts: alerts, cfg: cfg}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/help", b.startHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
	b.bot.Handle("/alerts", b.alertsHandler)
}

// NotifyAlerts sends the alert digest to every subscribed chat.
// Delivery continues past a failed chat; all failures are returned joined.
func (b *Bot) NotifyAlerts(ctx context.Context, alerts []models.Alert) error {
	const opn = "bot.NotifyAlerts"
	log := b.log.With("op", opn)

	if len(alerts) == 0 {
		return nil
	}

	chats, err := b.subs.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}
	if len(chats) == 0 {
		log.DebugContext(ctx, "No subscribers, skipping notification", "alerts", len(alerts))
		return nil
	}

	messages := formatAlerts(alerts)

	var errs []error
	for _, chatID := range chats {
		if err = ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err = b.sendAll(chatID, messages); err != nil {
			log.WarnContext(ctx, "Failed to deliver alerts", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(errs...))
	}

	log.InfoContext(ctx, "Alerts delivered", "chats", len(chats), "alerts", len(alerts))
	return nil
}

// sendAll delivers messages to one chat in order and stops at the first failure.
func (b *Bot) sendAll(chatID int64, messages []string) error {
	chat := &telebot.Chat{ID: chatID}
	for _, msg := range messages {
		if _, err := b.bot.Send(chat, msg); err != nil {
			return err
		}
	}
	return nil
}
