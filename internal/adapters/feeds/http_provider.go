package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

// HTTPProvider polls a JSON bulletin endpoint exposed by a faculty or the
// administration, e.g. the rectorate's announcement page.
type HTTPProvider struct {
	name          string
	endpoint      string
	establishment *domain.Establishment
	client        *http.Client
}

func NewHTTPProvider(name, endpoint string, establishment *domain.Establishment, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		name:          name,
		endpoint:      endpoint,
		establishment: establishment,
		client:        &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) SourceName() string { return p.name }

func (p *HTTPProvider) TargetEstablishment() *domain.Establishment { return p.establishment }

type bulletinItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

func (p *HTTPProvider) FetchLatest(ctx context.Context) ([]ports.InboundItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", p.name, resp.StatusCode)
	}

	var items []bulletinItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s feed: %w", p.name, err)
	}

	out := make([]ports.InboundItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" || item.Body == "" {
			continue
		}
		out = append(out, ports.InboundItem{
			ExternalID: item.ID,
			Title:      item.Title,
			Content:    item.Body,
			PostedAt:   item.PublishedAt,
			RawURL:     item.URL,
		})
	}
	return out, nil
}
