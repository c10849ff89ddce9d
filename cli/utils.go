package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractDocumentID accepts either a bare document ID or a full
// docs.google.com URL and returns the ID.
func extractDocumentID(idOrURL string) string {
	if !strings.Contains(idOrURL, "docs.google.com") {
		return idOrURL
	}

	// URLs look like https://docs.google.com/document/d/DOC_ID/edit.
	parts := strings.Split(idOrURL, "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	return idOrURL
}

// decodeEscapes turns literal \n and \\ sequences into their characters.
// Shells commonly pass backslash-n through untouched; escaped
// backslashes are handled first so they survive the newline pass.
func decodeEscapes(text string) string {
	replacements := []struct {
		old string
		new string
	}{
		{`\\`, "\x00"},
		{`\n`, "\n"},
		{"\x00", `\`},
	}

	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.old, r.new)
	}

	return text
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
