package webapi

import (
	"github.com/unbobounbobo/press-council/internal/council"
	"github.com/unbobounbobo/press-council/internal/store"
)

// ConversationStore is the persistence dependency of the web API.
// *store.FileStore implements it; tests substitute a fake.
type ConversationStore interface {
	Create() (*store.Conversation, error)
	Get(id string) (*store.Conversation, error)
	List() ([]store.Metadata, error)
	Delete(id string) error
	AppendUserTurn(id, text string) error
	AppendAssistantTurn(id string, drafts []council.Draft, evals []council.Evaluation, synthesis council.SynthesisResult) error
	SetTitle(id, title string) error
}
