// Package render presents simulation results as aligned text or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	"github.com/okian/talentroll/internal/domain/model"
)

// Formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer writes a complete Results document.
type Renderer interface {
	Render(w io.Writer, results *model.Results) error
}

// New returns the renderer for format. Text output is localized to tag.
func New(format string, tag language.Tag) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &Text{printer: Printer(tag)}, nil
	case FormatJSON:
		return &JSON{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// attributeNames are the DSA5 abbreviations of the Optolith attribute ids.
var attributeNames = map[string]string{
	"ATTR_1": "MU",
	"ATTR_2": "KL",
	"ATTR_3": "IN",
	"ATTR_4": "CH",
	"ATTR_5": "FF",
	"ATTR_6": "GE",
	"ATTR_7": "KO",
	"ATTR_8": "KK",
}

// AttributeName returns the abbreviation for id, or id itself when unknown.
func AttributeName(id string) string {
	if name, ok := attributeNames[id]; ok {
		return name
	}
	return id
}
