package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Measurement patterns, in priority order: three-axis before two-axis,
// labeled single-axis before bare "N cm". The first match wins.
var (
	decimalCommaRe = regexp.MustCompile(`(\d),(\d)`)

	dim3Re    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*cm\b`)
	dim2Re    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*cm\b`)
	labeledRe = regexp.MustCompile(`(?i)\b(?:hoogte|breedte|lengte|diepte|diameter)\b[:\s]+(?:ca\.?\s*)?(\d+(?:\.\d+)?)\s*cm\b`)
	bareRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*cm\b`)
)

// Context words that qualify a bare "N cm" as a physical measurement.
var dimensionContext = []string{
	"afmeting", "formaat", "maat", "groot",
	"hoog", "breed", "lang", "diep", "diameter", "doorsnede",
}

// bareContextWindow is how far back (in bytes) a context word may sit
// before a bare "N cm" match.
const bareContextWindow = 40

// ExtractDimensions scans the HTML-stripped description and long-form
// content for centimeter measurements. Best-effort: no match returns an
// empty string and never blocks ingestion.
func ExtractDimensions(description, content string) string {
	text := strings.TrimSpace(description + " " + content)
	if text == "" {
		return ""
	}
	// Normalize decimal commas so a single numeric convention applies.
	text = decimalCommaRe.ReplaceAllString(text, "$1.$2")

	if m := dim3Re.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s x %s x %s cm", m[1], m[2], m[3])
	}
	if m := dim2Re.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s x %s cm", m[1], m[2])
	}
	if m := labeledRe.FindStringSubmatch(text); m != nil {
		return m[1] + " cm"
	}
	return extractBare(text)
}

// extractBare accepts a bare "N cm" only when a qualifying context word
// appears shortly before the match.
func extractBare(text string) string {
	lower := strings.ToLower(text)

	for _, loc := range bareRe.FindAllStringSubmatchIndex(lower, -1) {
		start := loc[0] - bareContextWindow
		if start < 0 {
			start = 0
		}
		window := lower[start:loc[0]]
		for _, word := range dimensionContext {
			if strings.Contains(window, word) {
				return text[loc[2]:loc[3]] + " cm"
			}
		}
	}
	return ""
}
