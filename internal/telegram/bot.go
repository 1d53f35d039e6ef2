package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-glints-harvester/internal/export"
	"go-glints-harvester/internal/normalize"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func buildJobMessage(rec export.Record) string {
	//build message chunks
	msgText := fmt.Sprintf("🔥 *%s*\n", escapeMarkdown(rec.Title))

	company := rec.Company
	if company == "" {
		company = "N/A"
	}
	msgText += fmt.Sprintf("🏢 %s\n", escapeMarkdown(company))

	if rec.Salary != "" {
		msgText += fmt.Sprintf("💰 %s\n", escapeMarkdown(rec.Salary))
	}

	loc := rec.Location
	if loc == "" {
		loc = "N/A"
	}
	msgText += fmt.Sprintf("📍 %s\n", escapeMarkdown(loc))

	if len(rec.Tags) > 0 {
		msgText += fmt.Sprintf("🏷 %s\n", escapeMarkdown(normalize.JoinList(rec.Tags)))
	}

	if rec.Posted != "" {
		msgText += fmt.Sprintf("📅 %s\n", escapeMarkdown(rec.Posted))
	}

	if rec.Cluster != "" && rec.Cluster != "Unknown" {
		label := fmt.Sprintf("%s (confidence %d%%)", rec.Cluster, int(rec.Confidence*100))
		msgText += fmt.Sprintf("🤖 %s\n", escapeMarkdown(label))
	}

	msgText += fmt.Sprintf("🔖 Source: %s\n", escapeMarkdown(rec.Source))
	return msgText
}

func (b *Bot) SendJob(rec export.Record) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", rec.Link),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, buildJobMessage(rec))
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
