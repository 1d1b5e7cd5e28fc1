package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

const maxBufferedItems = 500

// WebsocketProvider subscribes to a live bulletin stream and buffers received
// announcements until the next sync drains them through FetchLatest. This
// bridges a push source into the pull-based provider contract.
type WebsocketProvider struct {
	name          string
	streamURL     string
	establishment *domain.Establishment
	logger        *slog.Logger

	mu     sync.Mutex
	buffer []ports.InboundItem
}

func NewWebsocketProvider(name, streamURL string, establishment *domain.Establishment, logger *slog.Logger) *WebsocketProvider {
	return &WebsocketProvider{
		name:          name,
		streamURL:     streamURL,
		establishment: establishment,
		logger:        logger,
	}
}

func (p *WebsocketProvider) SourceName() string { return p.name }

func (p *WebsocketProvider) TargetEstablishment() *domain.Establishment { return p.establishment }

// FetchLatest drains the buffered announcements.
func (p *WebsocketProvider) FetchLatest(_ context.Context) ([]ports.InboundItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := p.buffer
	p.buffer = nil
	return items, nil
}

// Run keeps the stream connection alive until the context is cancelled,
// reconnecting with a flat backoff on transient errors.
func (p *WebsocketProvider) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := p.subscribe(ctx); err != nil {
				p.logger.ErrorContext(ctx, "bulletin stream error, reconnecting",
					"module", "feeds.websocket_provider",
					"layer", "adapter",
					"operation", "subscribe",
					"outcome", "failure",
					"source", p.name,
					"error", err,
				)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
				}
			}
		}
	}
}

type streamMessage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

func (p *WebsocketProvider) subscribe(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, p.streamURL, nil)
	if err != nil {
		return fmt.Errorf("dial bulletin stream: %w", err)
	}
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var msg streamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			p.logger.WarnContext(ctx, "skipping malformed stream message", "source", p.name, "error", err)
			continue
		}
		if msg.ID == "" || msg.Body == "" {
			continue
		}

		p.mu.Lock()
		p.buffer = append(p.buffer, ports.InboundItem{
			ExternalID: msg.ID,
			Title:      msg.Title,
			Content:    msg.Body,
			PostedAt:   msg.PublishedAt,
			RawURL:     msg.URL,
		})
		// Drop the oldest items rather than grow without bound when syncs
		// stall.
		if len(p.buffer) > maxBufferedItems {
			p.buffer = p.buffer[len(p.buffer)-maxBufferedItems:]
		}
		p.mu.Unlock()
	}
}
