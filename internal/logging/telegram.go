package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shopify-bulk-editor/internal/config"
	"shopify-bulk-editor/internal/domain/model"
)

// Notifier pushes batch outcomes to an external alert channel. A nil *Telegram
// is a no-op, so callers never need to branch on configuration.
type Notifier interface {
	BatchCompleted(result *model.BatchResult)
	BatchFailed(section string, err error)
}

type Telegram struct {
	creds  config.TelegramBotConfig
	logger *zap.Logger
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

// NewTelegram returns nil when credentials are missing; the nil receiver
// methods below keep that safe.
func NewTelegram(creds config.TelegramBotConfig, logger *zap.Logger) *Telegram {
	if creds.ChatId == "" || creds.Token == "" {
		logger.Warn("telegram credentials missing, batch alerts disabled")
		return nil
	}
	return &Telegram{creds: creds, logger: logger}
}

func (t *Telegram) BatchCompleted(result *model.BatchResult) {
	if t == nil {
		return
	}
	icon := iconSuccess
	if result.PartialFailure || result.HardFailure() {
		icon = iconWarning
	}
	text := fmt.Sprintf(
		"%s Bulk edit %s finished: products=%d updated=%d skipped=%d failed=%d",
		icon, result.Section, result.TotalProducts,
		result.UpdatedVariants, result.SkippedVariants, result.FailedVariants,
	)
	if summary := result.ErrorSummary(); summary != "" {
		text += "\nerrors: " + summary
	}
	t.send(text)
}

func (t *Telegram) BatchFailed(section string, err error) {
	if t == nil {
		return
	}
	t.send(fmt.Sprintf("%s Bulk edit %s failed: %v", iconError, section, err))
}

func (t *Telegram) send(text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.creds.Token)

	reqBody := telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   strings.TrimSpace(text),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		t.logger.Error("telegram marshal failed", zap.Error(err))
		return
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		t.logger.Error("telegram send failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		t.logger.Error("telegram send rejected",
			zap.String("status", resp.Status),
			zap.ByteString("body", respBody),
		)
	}
}
