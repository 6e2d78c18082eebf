package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SetupWebhook registers the service's public update endpoint with the Bot
// API. When certPath is set the certificate is uploaded alongside, which is
// required for self-signed deployments.
func (s *RealSender) SetupWebhook(publicURL, secretToken, certPath string) error {
	params := tgbotapi.Params{"url": publicURL}
	params.AddNonEmpty("secret_token", secretToken)

	var err error
	if certPath != "" {
		_, err = s.bot.UploadFiles("setWebhook", params, []tgbotapi.RequestFile{{
			Name: "certificate",
			Data: tgbotapi.FilePath(certPath),
		}})
	} else {
		_, err = s.bot.MakeRequest("setWebhook", params)
	}
	if err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}
	return nil
}
