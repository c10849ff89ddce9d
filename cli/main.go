package main

import (
	"context"
	"fmt"
	"os"

	"github.com/defaye/gdoc-cli/auth"
	"github.com/defaye/gdoc-cli/docs"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

const usage = `gdoc-cli - edit remote rich-text documents from the command line

Usage:
  gdoc-cli <command> [flags] <args>

Commands:
  read     <document-id>                          Read document structure and content
  insert   <document-id> <index> <text>           Insert text at a character index
  delete   <document-id> <start> <end>            Delete a range of text
  replace  <document-id> <start> <end> <text>     Replace a range with new text
  find     <document-id> <heading>                Find a section by heading text
  batch    <document-id> <operations.json>        Run operations from a JSON file atomically
  markdown <document-id> <index> <text>           Insert markdown-formatted text
  logout                                          Revoke and delete stored credentials
  version                                         Print the version

Flags are given before positional arguments, e.g.:
  gdoc-cli insert -style HEADING_2 <document-id> 100 "Section Title\n"

Workflow:
  1. Read the document to get structure and indices.
  2. Find sections or calculate target indices.
  3. Insert, delete, or replace text at specific indices.
  4. Re-read if you need updated indices after edits.

Safety:
  By default, edits fail if the document was modified since your last
  read. Use -force to bypass, or -dry-run to preview without executing.
`

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	case "version", "--version":
		fmt.Printf("gdoc-cli %s\n", version)
		return
	}

	logFile, debugLogFile, err := setupLogger(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error, exiting: %s\n", err)
		os.Exit(1)
	}
	defer closeLogFiles(logFile, debugLogFile)

	// Logout needs no authenticated client.
	if command == "logout" {
		if err := runLogout(); err != nil {
			fail(err)
		}
		return
	}

	cfg := auth.ConfigFromEnv()
	httpClient, err := cfg.HTTPClient(context.Background())
	if err != nil {
		fail(err)
	}
	client := docs.NewClient(httpClient)

	var runErr error
	switch command {
	case "read":
		runErr = runRead(client, args)
	case "insert":
		runErr = runInsert(client, args)
	case "delete":
		runErr = runDelete(client, args)
	case "replace":
		runErr = runReplace(client, args)
	case "find":
		runErr = runFind(client, args)
	case "batch":
		runErr = runBatch(client, args)
	case "markdown":
		runErr = runMarkdown(client, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if runErr != nil {
		fail(runErr)
	}
}

// fail reports the error on the diagnostic stream and exits non-zero.
func fail(err error) {
	log.Error(err)
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
