package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// HTML renders the Markdown report into a standalone HTML page.
func (r *Report) HTML(f *Formatter) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(r.Markdown(f)), &body); err != nil {
		return "", fmt.Errorf("render report %s: %w", r.RunID, err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>SaaS P&amp;L Projection %s</title>\n", html.EscapeString(r.RunID))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}
