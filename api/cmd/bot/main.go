package main

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/celestial/gemini"
	"celestial-relay/api/internal/celestial/gpt"
	"celestial-relay/api/internal/config"
	"celestial-relay/api/internal/telegram"
)

func main() {
	cfg := config.Load()
	cfg.RequireProviderKey()
	if cfg.TelegramBotToken == "" {
		log.Fatalf("missing required env TELEGRAM_BOT_TOKEN")
	}

	engines := &celestial.Engines{
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel).WithEndpoint(cfg.OpenAIBaseURL),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	engine, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		log.Fatal(err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	r := &telegram.Router{Bot: bot, Engine: engine}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	log.Printf("celestial bot @%s running (provider=%s)", bot.Self.UserName, engine.Name())
	for upd := range updates {
		go r.HandleUpdate(upd)
	}
}
