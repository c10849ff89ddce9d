package docs

// Document is the raw document object returned by the service. Only the
// fields this tool consumes are declared.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	RevisionID string `json:"revisionId"`
	Body       Body   `json:"body"`
}

// Body holds the ordered structural elements of the document.
type Body struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is one block of the document body. Exactly one of
// Paragraph, Table, or SectionBreak is set.
type StructuralElement struct {
	StartIndex   int           `json:"startIndex"`
	EndIndex     int           `json:"endIndex"`
	Paragraph    *Paragraph    `json:"paragraph,omitempty"`
	Table        *Table        `json:"table,omitempty"`
	SectionBreak *SectionBreak `json:"sectionBreak,omitempty"`
}

// Paragraph is a run of text terminated by a newline.
type Paragraph struct {
	Elements       []ParagraphElement `json:"elements,omitempty"`
	ParagraphStyle *ParagraphStyle    `json:"paragraphStyle,omitempty"`
}

// ParagraphElement is one piece of a paragraph's content.
type ParagraphElement struct {
	TextRun *TextRun `json:"textRun,omitempty"`
}

// TextRun is a contiguous run of text sharing one style.
type TextRun struct {
	Content string `json:"content"`
}

// Table content is not parsed; its presence is enough for the reader to
// emit a placeholder block.
type Table struct{}

// SectionBreak content is not parsed.
type SectionBreak struct{}
