package advice

import (
	"context"
	"fmt"
	"strings"
)

// Fallback is the deterministic template provider. It has no external
// dependencies and no failure modes: Generate never returns an error.
type Fallback struct{}

// NewFallback creates the template provider.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Generate returns a fixed template keyed by result-count bucket for
// results mode, and one generic guided prompt for empty mode.
func (f *Fallback) Generate(_ context.Context, req Request) (string, error) {
	if req.Mode == ModeEmpty {
		return f.empty(req), nil
	}

	switch {
	case req.ResultCount == 1:
		return "Goede keuze! We vonden precies één item dat bij je zoekopdracht past.", nil
	case req.ResultCount <= 10:
		return fmt.Sprintf(
			"We vonden %d items die bij je zoekopdracht passen. Bekijk ze rustig en laat je inspireren!",
			req.ResultCount,
		), nil
	default:
		return fmt.Sprintf(
			"Er zijn %d items gevonden. Maak je zoekopdracht specifieker om sneller het perfecte item te vinden.",
			req.ResultCount,
		), nil
	}
}

func (f *Fallback) empty(req Request) string {
	msg := "Helaas, we vonden niets dat bij je zoekopdracht past. " +
		"Probeer het eens met andere woorden, bijvoorbeeld een kleur, materiaal of thema."
	if len(req.Themes) > 0 {
		msg += " Populaire thema's: " + strings.Join(req.Themes, ", ") + "."
	}
	return msg
}
