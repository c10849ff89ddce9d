// Package reader turns raw service documents into a structured form
// suited to computing edit indices, and renders them for the CLI.
package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/defaye/gdoc-cli/docs"
)

// ErrSectionNotFound is reported when no heading matches a section query.
var ErrSectionNotFound = errors.New("section not found")

// Block is one content block of a parsed document. Indices are UTF-16
// code-unit offsets into the document.
type Block struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

// ParsedDocument is the immutable result of a document read. It is
// produced fresh on every read and never mutated.
type ParsedDocument struct {
	DocumentID  string  `json:"documentId"`
	Title       string  `json:"title"`
	RevisionID  string  `json:"revisionId"`
	Content     []Block `json:"content"`
	FullText    string  `json:"fullText"`
	TotalLength int     `json:"totalLength"`
}

// styleNames maps the service's named styles to the simpler names the
// CLI reports.
var styleNames = map[string]string{
	"NORMAL_TEXT": "paragraph",
	"TITLE":       "title",
	"SUBTITLE":    "subtitle",
	"HEADING_1":   "heading1",
	"HEADING_2":   "heading2",
	"HEADING_3":   "heading3",
	"HEADING_4":   "heading4",
	"HEADING_5":   "heading5",
	"HEADING_6":   "heading6",
}

// Parse assembles a ParsedDocument from the raw document object.
func Parse(doc *docs.Document) *ParsedDocument {
	parsed := &ParsedDocument{
		DocumentID: doc.DocumentID,
		Title:      doc.Title,
		RevisionID: doc.RevisionID,
	}

	var fullText strings.Builder

	for _, element := range doc.Body.Content {
		switch {
		case element.Paragraph != nil:
			text := paragraphText(element.Paragraph)

			// Empty boilerplate paragraphs at the very start of the
			// body carry no content worth reporting.
			if strings.TrimSpace(text) == "" && element.StartIndex <= 1 {
				continue
			}

			parsed.Content = append(parsed.Content, Block{
				Type:       paragraphStyleName(element.Paragraph),
				Text:       text,
				StartIndex: element.StartIndex,
				EndIndex:   element.EndIndex,
			})
			fullText.WriteString(text)

		case element.Table != nil:
			parsed.Content = append(parsed.Content, Block{
				Type:       "table",
				Text:       "[TABLE]",
				StartIndex: element.StartIndex,
				EndIndex:   element.EndIndex,
			})
			fullText.WriteString("[TABLE]\n")

		case element.SectionBreak != nil:
			parsed.Content = append(parsed.Content, Block{
				Type:       "section_break",
				StartIndex: element.StartIndex,
				EndIndex:   element.EndIndex,
			})
		}
	}

	parsed.FullText = fullText.String()
	if n := len(doc.Body.Content); n > 0 {
		parsed.TotalLength = doc.Body.Content[n-1].EndIndex
	}

	return parsed
}

func paragraphText(p *docs.Paragraph) string {
	var text strings.Builder
	for _, element := range p.Elements {
		if element.TextRun != nil {
			text.WriteString(element.TextRun.Content)
		}
	}
	return text.String()
}

func paragraphStyleName(p *docs.Paragraph) string {
	if p.ParagraphStyle != nil {
		if name, ok := styleNames[p.ParagraphStyle.NamedStyleType]; ok {
			return name
		}
	}
	return "paragraph"
}

// Read fetches and renders a document as indented JSON or plain text.
func Read(c *docs.Client, documentID, format string) (string, error) {
	doc, err := c.Fetch(documentID)
	if err != nil {
		return "", err
	}

	parsed := Parse(doc)

	if format == "text" {
		return parsed.FullText, nil
	}

	rendered, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return string(rendered), nil
}

// Section is the result of a heading lookup: the heading's own range
// plus the content range running to the next heading or document end.
type Section struct {
	Heading           string `json:"heading"`
	HeadingStartIndex int    `json:"headingStartIndex"`
	HeadingEndIndex   int    `json:"headingEndIndex"`
	ContentStartIndex int    `json:"contentStartIndex"`
	ContentEndIndex   int    `json:"contentEndIndex"`
}

// FindSection locates the first heading whose text contains the query,
// case-insensitively.
func FindSection(c *docs.Client, documentID, heading string) (*Section, error) {
	doc, err := c.Fetch(documentID)
	if err != nil {
		return nil, err
	}

	parsed := Parse(doc)
	query := strings.ToLower(heading)

	for i, block := range parsed.Content {
		if !strings.HasPrefix(block.Type, "heading") || !strings.Contains(strings.ToLower(block.Text), query) {
			continue
		}

		contentEnd := parsed.TotalLength
		for _, next := range parsed.Content[i+1:] {
			if strings.HasPrefix(next.Type, "heading") {
				contentEnd = next.StartIndex
				break
			}
		}

		return &Section{
			Heading:           strings.TrimSpace(block.Text),
			HeadingStartIndex: block.StartIndex,
			HeadingEndIndex:   block.EndIndex,
			ContentStartIndex: block.EndIndex,
			ContentEndIndex:   contentEnd,
		}, nil
	}

	return nil, fmt.Errorf("%w: no heading matches %q", ErrSectionNotFound, heading)
}
