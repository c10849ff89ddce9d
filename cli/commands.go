package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/defaye/gdoc-cli/auth"
	"github.com/defaye/gdoc-cli/docs"
	"github.com/defaye/gdoc-cli/editor"
	"github.com/defaye/gdoc-cli/markdown"
	"github.com/defaye/gdoc-cli/reader"
	"github.com/fatih/color"
)

// paragraphStyles are the named styles the service accepts.
var paragraphStyles = map[string]bool{
	"NORMAL_TEXT": true,
	"HEADING_1":   true,
	"HEADING_2":   true,
	"HEADING_3":   true,
	"HEADING_4":   true,
	"HEADING_5":   true,
	"HEADING_6":   true,
	"TITLE":       true,
	"SUBTITLE":    true,
}

// bulletPresets are the list presets the service accepts.
var bulletPresets = map[string]bool{
	"BULLET_DISC_CIRCLE_SQUARE":              true,
	"BULLET_DIAMONDX_ARROW3D_SQUARE":         true,
	"BULLET_CHECKBOX":                        true,
	"BULLET_ARROW_DIAMOND_DISC":              true,
	"NUMBERED_DECIMAL_ALPHA_ROMAN":           true,
	"NUMBERED_DECIMAL_ALPHA_ROMAN_PARENS":    true,
	"NUMBERED_DECIMAL_NESTED":                true,
	"NUMBERED_UPPERALPHA_ALPHA_ROMAN":        true,
	"NUMBERED_UPPERROMAN_UPPERALPHA_DECIMAL": true,
	"NUMBERED_ZERODECIMAL_ALPHA_ROMAN":       true,
}

func runRead(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	format := fs.String("format", "json", "Output format: 'json' for structured data, 'text' for plain text")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: gdoc-cli read [-format json|text] <document-id>")
	}
	if *format != "json" && *format != "text" {
		return fmt.Errorf("invalid format %q: must be 'json' or 'text'", *format)
	}

	documentID := extractDocumentID(rest[0])
	log.Infof("reading document %s", documentID)

	output, err := reader.Read(client, documentID, *format)
	if err != nil {
		return editor.ClassifyRemoteError(err)
	}

	fmt.Println(output)
	return nil
}

func runInsert(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	style := fs.String("style", "", "Paragraph style (NORMAL_TEXT is applied when text ends with \\n)")
	bullet := fs.String("bullet", "", "Apply bullet/numbered list formatting to inserted paragraphs")
	bold := fs.Bool("bold", false, "Make text bold")
	italic := fs.Bool("italic", false, "Make text italic")
	underline := fs.Bool("underline", false, "Underline text")
	strikethrough := fs.Bool("strikethrough", false, "Add strikethrough to text")
	code := fs.Bool("code", false, "Apply a monospace font (Courier New)")
	force := fs.Bool("force", false, "Skip the revision safety check")
	dryRun := fs.Bool("dry-run", false, "Preview the operation without executing")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: gdoc-cli insert [flags] <document-id> <index> <text>")
	}

	documentID := extractDocumentID(rest[0])
	index, err := strconv.Atoi(rest[1])
	if err != nil || index < 0 {
		return fmt.Errorf("invalid index %q: must be a non-negative integer", rest[1])
	}
	text := decodeEscapes(rest[2])

	if *style != "" && !paragraphStyles[*style] {
		return fmt.Errorf("invalid style %q", *style)
	}
	if *bullet != "" && !bulletPresets[*bullet] {
		return fmt.Errorf("invalid bullet preset %q", *bullet)
	}

	// Newline-terminated inserts are paragraph content by default.
	paragraphStyle := *style
	if paragraphStyle == "" && strings.HasSuffix(text, "\n") {
		paragraphStyle = "NORMAL_TEXT"
	}

	op := editor.Operation{
		Kind:           editor.KindInsert,
		Start:          index,
		Text:           text,
		ParagraphStyle: paragraphStyle,
		BulletPreset:   *bullet,
		CharStyle: editor.CharStyle{
			Bold:          *bold,
			Italic:        *italic,
			Underline:     *underline,
			Strikethrough: *strikethrough,
			Code:          *code,
		},
	}

	log.Infof("insert at %d in document %s (dryRun=%v force=%v)", index, documentID, *dryRun, *force)

	if err := submit(client, documentID, []editor.Operation{op}, *force, *dryRun); err != nil {
		return err
	}

	if !*dryRun {
		styleMsg := ""
		if *style != "" {
			styleMsg = fmt.Sprintf(" with style %s", *style)
		}
		bulletMsg := ""
		if *bullet != "" {
			bulletMsg = fmt.Sprintf(" as %s list", *bullet)
		}

		var formats []string
		for _, f := range []struct {
			on   bool
			name string
		}{
			{*bold, "bold"}, {*italic, "italic"}, {*underline, "underline"},
			{*strikethrough, "strikethrough"}, {*code, "code"},
		} {
			if f.on {
				formats = append(formats, f.name)
			}
		}
		formatMsg := ""
		if len(formats) > 0 {
			formatMsg = fmt.Sprintf(" (%s)", strings.Join(formats, ", "))
		}

		color.Green("Inserted text at index %d%s%s%s", index, styleMsg, bulletMsg, formatMsg)
	}

	return nil
}

func runDelete(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	force := fs.Bool("force", false, "Skip the revision safety check")
	dryRun := fs.Bool("dry-run", false, "Preview the operation without executing")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: gdoc-cli delete [flags] <document-id> <start> <end>")
	}

	documentID := extractDocumentID(rest[0])
	start, end, err := parseRange(rest[1], rest[2])
	if err != nil {
		return err
	}

	op := editor.Delete(start, end)
	if err := op.Validate(); err != nil {
		return err
	}

	log.Infof("delete [%d, %d) in document %s (dryRun=%v force=%v)", start, end, documentID, *dryRun, *force)

	if err := submit(client, documentID, []editor.Operation{op}, *force, *dryRun); err != nil {
		return err
	}

	if !*dryRun {
		color.Green("Deleted range [%d, %d)", start, end)
	}
	return nil
}

func runReplace(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("replace", flag.ExitOnError)
	force := fs.Bool("force", false, "Skip the revision safety check")
	dryRun := fs.Bool("dry-run", false, "Preview the operation without executing")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 4 {
		return fmt.Errorf("usage: gdoc-cli replace [flags] <document-id> <start> <end> <text>")
	}

	documentID := extractDocumentID(rest[0])
	start, end, err := parseRange(rest[1], rest[2])
	if err != nil {
		return err
	}
	text := decodeEscapes(rest[3])

	ops, err := editor.Replace(start, end, text)
	if err != nil {
		return err
	}

	log.Infof("replace [%d, %d) in document %s (dryRun=%v force=%v)", start, end, documentID, *dryRun, *force)

	if err := submit(client, documentID, ops, *force, *dryRun); err != nil {
		return err
	}

	if !*dryRun {
		color.Green("Replaced range [%d, %d) with new text", start, end)
	}
	return nil
}

func runFind(client *docs.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: gdoc-cli find <document-id> <heading>")
	}

	documentID := extractDocumentID(args[0])
	log.Infof("finding section %q in document %s", args[1], documentID)

	section, err := reader.FindSection(client, documentID, args[1])
	if err != nil {
		return err
	}

	return printJSON(section)
}

func runBatch(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Preview the operations without executing")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: gdoc-cli batch [-dry-run] <document-id> <operations.json>")
	}

	documentID := extractDocumentID(rest[0])

	raw, err := os.ReadFile(rest[1])
	if err != nil {
		return fmt.Errorf("error loading operations file: %w", err)
	}

	entries, err := decodeBatchEntries(raw)
	if err != nil {
		return err
	}

	ops, err := editor.FromBatchEntries(entries)
	if err != nil {
		return err
	}

	log.Infof("batch of %d operations in document %s (dryRun=%v)", len(entries), documentID, *dryRun)

	// The batch command carries no revision precondition: operations
	// files are built from a read the caller already made.
	if err := submit(client, documentID, ops, true, *dryRun); err != nil {
		return err
	}

	if !*dryRun {
		color.Green("Executed %d operations", len(entries))
	}
	return nil
}

func runMarkdown(client *docs.Client, args []string) error {
	fs := flag.NewFlagSet("markdown", flag.ExitOnError)
	force := fs.Bool("force", false, "Skip the revision safety check")
	dryRun := fs.Bool("dry-run", false, "Preview the operation without executing")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: gdoc-cli markdown [flags] <document-id> <index> <text>")
	}

	documentID := extractDocumentID(rest[0])
	index, err := strconv.Atoi(rest[1])
	if err != nil || index < 0 {
		return fmt.Errorf("invalid index %q: must be a non-negative integer", rest[1])
	}
	text := decodeEscapes(rest[2])

	requests, totalLength := markdown.Lower(text, index)

	requiredRevision := ""
	if !*force && !*dryRun {
		requiredRevision = fetchRevisionOrWarn(client, documentID)
	}

	log.Infof("markdown insert of %d units at %d in document %s (dryRun=%v)", totalLength, index, documentID, *dryRun)

	if *dryRun {
		return printJSON(&editor.Preview{
			DryRun:           true,
			Requests:         requests,
			RequiredRevision: requiredRevision,
		})
	}

	result, err := client.SubmitBatch(documentID, requests, requiredRevision)
	if err != nil {
		return editor.ClassifyRemoteError(err)
	}

	if err := printJSON(result); err != nil {
		return err
	}

	color.Green("Inserted %d units of formatted text at index %d", totalLength, index)
	return nil
}

func runLogout() error {
	cfg := auth.ConfigFromEnv()

	removed, err := auth.Revoke(cfg)
	if err != nil {
		return err
	}

	if removed {
		color.Green("Credentials deleted from %s", cfg.CredentialsPath)
	} else {
		color.Yellow("No credentials found at %s", cfg.CredentialsPath)
	}
	return nil
}

// submit runs the shared edit pipeline: optional revision probe,
// dry-run preview or atomic execution, JSON result on stdout.
func submit(client *docs.Client, documentID string, ops []editor.Operation, force, dryRun bool) error {
	requiredRevision := ""
	if !force && !dryRun {
		requiredRevision = fetchRevisionOrWarn(client, documentID)
	}

	if dryRun {
		preview, err := editor.DryRun(ops, requiredRevision)
		if err != nil {
			return err
		}
		return printJSON(preview)
	}

	result, err := editor.Execute(client, documentID, ops, requiredRevision)
	if err != nil {
		return err
	}

	return printJSON(result)
}

// fetchRevisionOrWarn reads the staleness token. A failed probe
// downgrades to a warning and an unguarded edit rather than blocking
// the command.
func fetchRevisionOrWarn(client *docs.Client, documentID string) string {
	revision, err := client.FetchRevision(documentID)
	if err != nil {
		log.Warnf("could not get revision ID for %s: %v", documentID, err)
		color.New(color.FgYellow).Fprintf(os.Stderr, "Warning: could not get revision ID: %s\n", err)
		return ""
	}
	return revision
}

func parseRange(startArg, endArg string) (int, int, error) {
	start, err := strconv.Atoi(startArg)
	if err != nil || start < 0 {
		return 0, 0, fmt.Errorf("invalid start index %q: must be a non-negative integer", startArg)
	}

	end, err := strconv.Atoi(endArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end index %q: must be an integer", endArg)
	}

	return start, end, nil
}

func decodeBatchEntries(raw []byte) ([]editor.BatchEntry, error) {
	var entries []editor.BatchEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error loading operations file: %w", err)
	}
	return entries, nil
}
