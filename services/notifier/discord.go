package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pricewatcher/helpers"
	"pricewatcher/logger"
	apperrors "pricewatcher/pkg/errors"
)

// DiscordNotifier delivers messages through a Discord-style webhook.
// Bodies longer than the channel's hard cap are split into chunks sent
// sequentially with a pause in between to stay under the rate limit.
type DiscordNotifier struct {
	webhookURL  string
	client      *http.Client
	maxChunkLen int
	ratePause   time.Duration
	sleep       func(time.Duration)
}

var _ Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a DiscordNotifier. An empty webhookURL
// disables delivery: Send logs a warning and returns nil, so the cycle
// still persists its snapshot.
func NewDiscordNotifier(webhookURL string, maxChunkLen int, ratePause, timeout time.Duration) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL:  webhookURL,
		client:      helpers.NewHTTPClient(timeout),
		maxChunkLen: maxChunkLen,
		ratePause:   ratePause,
		sleep:       time.Sleep,
	}
}

// Send delivers the message, chunked to the channel cap. The first
// failed chunk aborts the remainder and surfaces a delivery error.
func (n *DiscordNotifier) Send(message string) error {
	log := logger.ForComponent("notifier")

	if n.webhookURL == "" {
		log.Warn().Msg("DISCORD_WEBHOOK not set; skipping alert")
		return nil
	}

	chunks := chunkMessage(message, n.maxChunkLen)
	for i, chunk := range chunks {
		if i > 0 {
			n.sleep(n.ratePause)
		}
		if err := n.postChunk(chunk); err != nil {
			return err
		}
	}

	log.Info().Int("chunks", len(chunks)).Int("bytes", len(message)).Msg("Alert delivered")
	return nil
}

func (n *DiscordNotifier) postChunk(chunk string) error {
	payload, err := json.Marshal(map[string]string{"content": chunk})
	if err != nil {
		return apperrors.NewDelivery("discord", "failed to encode chunk", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewDelivery("discord", "webhook request failed", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewDelivery("discord", fmt.Sprintf("webhook returned status %d", resp.StatusCode), nil)
	}
	return nil
}

// chunkMessage splits a message into pieces of at most maxLen bytes.
// Boundaries may fall mid-line; the channel accepts that.
func chunkMessage(message string, maxLen int) []string {
	if maxLen <= 0 || len(message) <= maxLen {
		return []string{message}
	}

	chunks := make([]string, 0, len(message)/maxLen+1)
	for len(message) > maxLen {
		chunks = append(chunks, message[:maxLen])
		message = message[maxLen:]
	}
	if len(message) > 0 {
		chunks = append(chunks, message)
	}
	return chunks
}
