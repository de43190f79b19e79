package providers

import (
	"context"
	"fmt"
	"html"
	"time"
)

// Mock renders deterministic placeholder screens without any network
// dependency. It is the default provider when no API key is configured.
type Mock struct {
	// Delay simulates generation latency per screen. Zero means none.
	Delay time.Duration
}

// NewMock returns a mock provider with no artificial latency.
func NewMock() *Mock {
	return &Mock{}
}

// GenerateScreen renders a placeholder document titled after the screen.
// It honors context cancellation during the simulated delay.
func (p *Mock) GenerateScreen(ctx context.Context, name, description, _ string) (string, error) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	body := fmt.Sprintf(`<html><head><style>
body { margin: 0; font-family: system-ui, sans-serif; background: #f5f5f7; color: #1d1d1f; }
header { padding: 24px; background: #fff; border-bottom: 1px solid #e5e5ea; }
main { padding: 24px; }
.card { background: #fff; border-radius: 12px; padding: 20px; margin-bottom: 16px; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
</style></head><body>
<header><h1>%s</h1></header>
<main>
<div class="card"><p>%s</p></div>
<div class="card"><p>Placeholder content generated offline.</p></div>
</main>
</body></html>`, html.EscapeString(name), html.EscapeString(description))

	return Sanitize(body), nil
}
