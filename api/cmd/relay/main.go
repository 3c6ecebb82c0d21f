package main

import (
	"log"
	"net/http"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/celestial/gemini"
	"celestial-relay/api/internal/celestial/gpt"
	"celestial-relay/api/internal/config"
	"celestial-relay/api/internal/handle"
	"celestial-relay/api/internal/httpserver"
	"celestial-relay/api/internal/metrics"
)

func main() {
	cfg := config.Load()
	cfg.RequireProviderKey()

	metrics.Register()

	engines := &celestial.Engines{
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel).WithEndpoint(cfg.OpenAIBaseURL),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	engine, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		log.Fatal(err)
	}

	mux := httpserver.New(handle.New(engine))

	addr := ":" + cfg.Port
	log.Printf("celestial-relay listening on %s (provider=%s)", addr, engine.Name())
	log.Fatal(http.ListenAndServe(addr, mux))
}
