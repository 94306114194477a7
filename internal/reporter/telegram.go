package reporter

import (
	"fmt"
	"html"
	"strings"

	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter pushes collected listings and run summaries to a
// Telegram chat. The pipeline works without it; a nil reporter is a
// valid no-op.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	if t == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendRecord(rec models.JobRecord) error {
	return t.SendMessage(formatRecord(rec))
}

// SendSummary reports how one source's session went.
func (t *TelegramReporter) SendSummary(source models.Source, res collector.Result, saved int) error {
	text := fmt.Sprintf(
		"📊 <b>%s</b>: %s após %d iterações\n"+
			"Coletadas: %d | Novas no banco: %d",
		html.EscapeString(string(source)),
		res.State, res.Iterations,
		len(res.Records), saved,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Erro na coleta</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}

func formatRecord(rec models.JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 <b>%s</b>\n", html.EscapeString(rec.Title))
	if rec.Company != "" {
		fmt.Fprintf(&b, "🏢 %s\n", html.EscapeString(rec.Company))
	}
	fmt.Fprintf(&b, "🗂 %s | 📍 %s\n", html.EscapeString(rec.Category), modalityLabel(rec.Modality))

	switch rec.Channel {
	case models.ContactLink:
		fmt.Fprintf(&b, "🔗 <a href=\"%s\">Candidatar-se</a>", html.EscapeString(rec.ApplyLink))
	case models.ContactEmail:
		fmt.Fprintf(&b, "✉️ %s", html.EscapeString(rec.Email))
	case models.ContactMessage:
		fmt.Fprintf(&b, "💬 <a href=\"%s\">Perfil do autor</a>", html.EscapeString(rec.AuthorProfile))
	}
	return b.String()
}

func modalityLabel(m models.Modality) string {
	switch m {
	case models.ModalityRemote:
		return "Remoto"
	case models.ModalityHybrid:
		return "Híbrido"
	case models.ModalityOnSite:
		return "Presencial"
	}
	return "Não especificado"
}
