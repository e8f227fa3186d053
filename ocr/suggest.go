package ocr

import (
	"errors"
	"strings"
)

// ErrNoText is returned when recognition produced nothing usable as
// alternative text.
var ErrNoText = errors.New("no recognizable text in image")

// maxAltRunes caps suggestion length; screen readers handle short
// descriptions better than transcripts.
const maxAltRunes = 120

// SuggestAltText runs OCR over image data and shapes the recognized text
// into an alternative-text suggestion for a figure element.
func SuggestAltText(c *Client, imageData []byte) (string, error) {
	text, err := c.RecognizeImage(imageData)
	if err != nil {
		return "", err
	}
	alt, ok := shapeAlt(text)
	if !ok {
		return "", ErrNoText
	}
	return alt, nil
}

// shapeAlt collapses recognized text into one line and truncates it to a
// description-sized suggestion.
func shapeAlt(text string) (string, bool) {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return "", false
	}
	runes := []rune(collapsed)
	if len(runes) > maxAltRunes {
		collapsed = strings.TrimSpace(string(runes[:maxAltRunes])) + "..."
	}
	return collapsed, true
}
