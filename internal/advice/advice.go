// Package advice produces the short natural-language message that
// accompanies every search response.
package advice

import "context"

// Mode selects between the two message kinds.
type Mode string

const (
	// ModeResults summarizes a non-empty result list.
	ModeResults Mode = "results"
	// ModeEmpty guides the shopper after a search without matches.
	ModeEmpty Mode = "empty"
)

// Request carries the context a provider needs to phrase the message.
type Request struct {
	Mode        Mode
	Query       string
	ResultCount int
	// Types and Themes describe the catalog taxonomy so the message can
	// reference real terms.
	Types  []string
	Themes []string
}

// Provider generates one advisory message. Implementations may fail;
// composition with the deterministic fallback guarantees the query
// engine always gets text.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
