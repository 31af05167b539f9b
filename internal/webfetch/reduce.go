package webfetch

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"outreach-backend/internal/shared/util"
)

const mimePDF = "application/pdf"

// Elements whose text never renders.
const hiddenSelector = "script, style, noscript, template, svg, iframe"

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"title": true, "tr": true, "ul": true,
}

func reduce(body []byte, contentType string) (string, error) {
	if isPDF(body, contentType) {
		return reducePDF(body)
	}
	return reduceHTML(bytes.NewReader(body))
}

func isPDF(body []byte, contentType string) bool {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return mime == mimePDF || bytes.HasPrefix(body, []byte("%PDF-"))
}

// reduceHTML drops non-rendered elements and returns visible text, one block per line.
func reduceHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find(hiddenSelector).Remove()

	var b strings.Builder
	collectText(doc.Selection, &b)
	return util.CollapseWhitespace(b.String()), nil
}

func collectText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch name {
		case "#text":
			b.WriteString(child.Text())
		case "#comment":
		default:
			collectText(child, b)
			if blockElements[name] {
				b.WriteString("\n")
			} else if name == "td" || name == "th" {
				b.WriteString(" ")
			}
		}
	})
}

func reducePDF(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	return util.CollapseWhitespace(buf.String()), nil
}
