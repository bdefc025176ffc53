package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Houeta/price-cage/internal/models"
	"gopkg.in/telebot.v4"
)

const (
	// maxMessageRunes is the Telegram limit for one text message.
	maxMessageRunes = 4096
	alertsHeader    = "Price alerts:\n"
)

const helpText = "Hello! I track prices of sports and streetwear shops.\n\n" +
	"/subscribe - receive price alerts after every crawl\n" +
	"/unsubscribe - stop receiving alerts\n" +
	"/alerts - show the latest price swings"

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send(helpText); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	added, err := b.subs.SubscribeChat(reqCtx, ctx.Chat().ID)
	if err != nil {
		b.log.Error("Failed to subscribe chat", "chat_id", ctx.Chat().ID, "error", err)
		return ctx.Send("Something went wrong, please try again later.")
	}

	msg := "You are subscribed to price alerts."
	if !added {
		msg = "You are already subscribed."
	}
	return ctx.Send(msg)
}

func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	removed, err := b.subs.UnsubscribeChat(reqCtx, ctx.Chat().ID)
	if err != nil {
		b.log.Error("Failed to unsubscribe chat", "chat_id", ctx.Chat().ID, "error", err)
		return ctx.Send("Something went wrong, please try again later.")
	}

	msg := "You will no longer receive price alerts."
	if !removed {
		msg = "You were not subscribed."
	}
	return ctx.Send(msg)
}

func (b *Bot) alertsHandler(ctx telebot.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	alerts, err := b.alerts.Generate(reqCtx, b.cfg.Threshold, b.cfg.Lookback)
	if err != nil {
		b.log.Error("Failed to generate alerts", "error", err)
		return ctx.Send("Something went wrong, please try again later.")
	}

	if len(alerts) == 0 {
		return ctx.Send(fmt.Sprintf("No price changes of %.1f%% or more in the last %s.", b.cfg.Threshold, b.cfg.Lookback))
	}
	for _, msg := range formatAlerts(alerts) {
		if err = ctx.Send(msg); err != nil {
			return fmt.Errorf("failed to send alerts: %w", err)
		}
	}
	return nil
}

// formatAlerts renders alerts as plain text messages, each within Telegram's message length limit.
func formatAlerts(alerts []models.Alert) []string {
	var (
		messages []string
		sb       strings.Builder
	)

	sb.WriteString(alertsHeader)
	size := utf8.RuneCountInString(alertsHeader)

	for _, a := range alerts {
		entry := truncateRunes(formatAlert(a), maxMessageRunes)
		n := utf8.RuneCountInString(entry)

		if size+n > maxMessageRunes {
			messages = append(messages, sb.String())
			sb.Reset()
			size = 0
		}
		sb.WriteString(entry)
		size += n
	}

	return append(messages, sb.String())
}

func formatAlert(a models.Alert) string {
	arrow := "▲"
	if a.Type == models.PriceDecrease {
		arrow = "▼"
	}

	entry := fmt.Sprintf("\n%s %s\n%s %s (was %s, %+.2f%%)\n",
		arrow, a.ProductName, a.CurrentPrice.String(), a.Currency, a.PreviousPrice.String(), a.ChangePercent)
	if a.SourceURL != "" {
		entry += a.SourceURL + "\n"
	}
	return entry
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
