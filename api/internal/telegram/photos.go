package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/util"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID

	// Telegram sends several sizes; the last one is the largest.
	ph := msg.Photo[len(msg.Photo)-1]
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	imgBytes, err := download(url)
	if err != nil {
		r.sendError(cid, err)
		return
	}

	r.send(cid, "Got the photo, identifying the object…")

	dataURL := util.MakeDataURL(util.SniffMimeHTTP(imgBytes), base64.StdEncoding.EncodeToString(imgBytes))

	ctx, cancel := context.WithTimeout(context.Background(), identifyDeadline)
	defer cancel()

	info, err := r.Engine.Identify(ctx, celestial.IdentifyRequest{
		Type:  celestial.InputImage,
		Image: dataURL,
	})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	r.send(cid, Card(info))
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}
