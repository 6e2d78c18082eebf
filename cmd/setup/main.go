// Command setup registers the webhook endpoint with the Bot API. Run it once
// after deploying, or whenever the public URL, TLS certificate or secret
// token changes.
package main

import (
	"flag"
	"log"

	"telegram-anon-relay/internal/config"
	tele "telegram-anon-relay/internal/infra/adapters/telegram"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.HTTP.PublicURL == "" {
		log.Fatal("http.public_url is required for webhook setup")
	}

	sender, err := tele.NewRealSender(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	endpoint := cfg.HTTP.PublicURL + "/update"
	if err := sender.SetupWebhook(endpoint, cfg.HTTP.SecretToken, cfg.HTTP.TLS.Cert); err != nil {
		log.Fatalf("setup webhook: %v", err)
	}
	log.Printf("webhook registered at %s", endpoint)
}
