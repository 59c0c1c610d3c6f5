package council

import (
	"context"
	"fmt"
	"strings"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/openrouter"
)

// FallbackTitle is used when title generation fails.
const FallbackTitle = "New press release"

const maxTitleRunes = 50

// GenerateTitle produces a short conversation title from the user's first
// message. Best effort: one soft call on a fast model with a short timeout,
// falling back to a static title.
func (c *Council) GenerateTitle(ctx context.Context, query string) string {
	msgs := []openrouter.Message{
		openrouter.User(fmt.Sprintf(titlePrompt, query)),
	}

	res := c.caller.TryComplete(ctx, catalog.TitleModelID, msgs, openrouter.CallOptions{Timeout: TitleTimeout})
	if res == nil {
		return FallbackTitle
	}

	title := strings.TrimSpace(res.Content)
	title = strings.Trim(title, `"'`)
	if title == "" {
		return FallbackTitle
	}

	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes-3]) + "..."
	}
	return title
}
