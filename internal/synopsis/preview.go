package synopsis

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joelkehle/protocol-studio/internal/classify"
	"github.com/joelkehle/protocol-studio/internal/protocol"
)

const previewCSS = `body{font-family:Georgia,'Times New Roman',serif;color:#1c1917;background:#fff;max-width:860px;margin:0 auto;padding:1.2rem 1.5rem;line-height:1.55;}
h1{font-size:1.5rem;border-bottom:2px solid #a8a29e;padding-bottom:0.4rem;}
h2{font-size:1.15rem;margin-top:1.6rem;color:#44403c;}
h3{font-size:1rem;margin-top:1.1rem;}
table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.85rem;}
th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
@media print{@page{size:auto;margin:14mm;} body{padding:0;}}`

// BuildPreviewHTML renders the draft's synopsis markdown into a standalone
// HTML document for the browser preview.
func BuildPreviewHTML(d protocol.Draft, loc classify.Locale) (string, error) {
	markdown := BuildMarkdown(d, loc)

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "Protocol Synopsis"
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + htmlEscape(title) + "</title>" +
		"<style>" + previewCSS + "</style></head><body>" +
		"<div class='synopsis-html'>" + content.String() + "</div>" +
		"</body></html>", nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
