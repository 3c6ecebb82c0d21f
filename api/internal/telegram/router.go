package telegram

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"celestial-relay/api/internal/celestial"
)

const identifyDeadline = 120 * time.Second

type Router struct {
	Bot    *tgbotapi.BotAPI
	Engine celestial.Engine
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}

	if txt := strings.TrimSpace(upd.Message.Text); txt != "" {
		r.identifyText(cid, txt)
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send me the name of a celestial object, or a photo of one, and I will tell you about it.\nCommands: /health")
	case "health":
		r.send(cid, "OK: "+r.Engine.Name())
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) identifyText(cid int64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), identifyDeadline)
	defer cancel()

	info, err := r.Engine.Identify(ctx, celestial.IdentifyRequest{
		Type:  celestial.InputText,
		Query: query,
	})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	r.send(cid, Card(info))
}

func (r *Router) send(chatID int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendError(chatID int64, err error) {
	log.Printf("chat %d: identify failed: %v", chatID, err)
	r.send(chatID, "Could not identify the object. Please try again.")
}
