package webapi

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/unbobounbobo/press-council/internal/store"
)

var markdown = goldmark.New()

// HandleReleaseHTML renders the most recent finished release of a
// conversation as a standalone HTML page. Release content is markdown; the
// page is what a user prints or forwards.
func (h *Handlers) HandleReleaseHTML(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	conv, err := h.convs.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	release := latestRelease(conv)
	if release == "" {
		writeError(w, http.StatusNotFound, "conversation has no finished release")
		return
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(release), &body); err != nil {
		writeError(w, http.StatusInternalServerError, "rendering release: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, releasePage, html.EscapeString(conv.Title), body.String()) //nolint:errcheck
}

// latestRelease returns the newest assistant turn's synthesis content,
// skipping degraded turns.
func latestRelease(conv *store.Conversation) string {
	for i := len(conv.Turns) - 1; i >= 0; i-- {
		turn := conv.Turns[i]
		if turn.Synthesis == nil || turn.Synthesis.Error {
			continue
		}
		if turn.Synthesis.Content != "" {
			return turn.Synthesis.Content
		}
	}
	return ""
}

const releasePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 44rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.6; color: #222; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
</style>
</head>
<body>
%s
</body>
</html>
`
