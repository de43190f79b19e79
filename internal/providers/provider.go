package providers

import (
	"context"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/screenloom/screenloom/internal/infrastructure/config"
	"github.com/screenloom/screenloom/internal/infrastructure/logging"
)

// Provider generates the HTML for one screen.
type Provider interface {
	// GenerateScreen returns sanitized HTML for the named screen.
	GenerateScreen(ctx context.Context, name, description, systemPrompt string) (string, error)
}

// DefaultSystemPrompt instructs the model to emit one self-contained
// HTML document per screen.
const DefaultSystemPrompt = `You are a UI prototyping assistant. Generate a single self-contained HTML document for the requested screen. Inline all CSS in a <style> element. Do not use external resources, scripts, or markdown. Respond with the HTML only.`

// ForConfig selects a provider: the OpenAI provider when an API key is
// configured, otherwise the offline mock.
func ForConfig(cfg config.ProviderConfig, log *logging.Logger) Provider {
	if cfg.APIKey == "" {
		return NewMock()
	}
	return NewOpenAI(cfg, log)
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:html)?[ \t]*\n?")
	fenceClose = regexp.MustCompile("\n?[ \t]*```$")
)

// StripFences removes a markdown code fence wrapping a model response.
// Models add them despite instructions not to.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	content = fenceOpen.ReplaceAllString(content, "")
	content = fenceClose.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// policy keeps document structure and inline styling but drops scripts,
// event handlers, and anything else executable.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("html", "head", "body", "title", "style", "header", "footer",
		"nav", "main", "section", "article", "aside", "figure", "figcaption",
		"button", "input", "label", "select", "option", "textarea", "form", "svg", "path")
	p.AllowAttrs("style", "class", "id").Globally()
	p.AllowAttrs("type", "placeholder", "value", "checked", "disabled").OnElements("input", "button", "select", "textarea", "option")
	p.AllowAttrs("viewBox", "d", "fill", "stroke", "stroke-width").OnElements("svg", "path")
	return p
}()

// Sanitize strips executable content from generated markup.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
