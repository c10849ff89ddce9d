package editor

import (
	"fmt"
	"sort"

	"github.com/defaye/gdoc-cli/docs"
)

// Replace lowers a replace request to its primitive pair: an insert of
// the new text at the range's end, then a delete of [start, end).
//
// The insert is addressed at end so the delete cannot shift it; with
// the sequencer's insert-before-delete tie break the new text ends up
// occupying what was [start, end).
func Replace(start, end int, text string) ([]Operation, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: end index (%d) must be greater than start index (%d)", ErrInvalidRange, end, start)
	}

	return []Operation{
		Insert(end, text),
		Delete(start, end),
	}, nil
}

// Sequence orders primitive operations so that executing them in the
// returned order against a single linear buffer yields the same result
// as applying each one independently to a snapshot of the original
// document.
//
// Deleting at a low index shifts every subsequent index down; inserting
// shifts them up. Sorting by descending start index applies operations
// strictly right to left, so nothing to an operation's left has been
// touched when it executes and nothing to its right matters anymore.
// Inserts sort before deletes at the same index for the replace
// decomposition: inserting at end before deleting [start, end) keeps
// the new text out of the deleted range.
func Sequence(operations []Operation) []Operation {
	ordered := make([]Operation, len(operations))
	copy(ordered, operations)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start > ordered[j].Start
		}
		return opRank(ordered[i]) < opRank(ordered[j])
	})

	return ordered
}

func opRank(op Operation) int {
	if op.Kind == KindInsert {
		return 0
	}
	return 1
}

// Plan validates, sequences, and flattens operations into the wire
// request list for one atomic batch submission.
func Plan(operations []Operation) ([]docs.Request, error) {
	for _, op := range operations {
		if err := op.Validate(); err != nil {
			return nil, err
		}
	}

	var requests []docs.Request
	for _, op := range Sequence(operations) {
		requests = append(requests, op.Requests()...)
	}

	return requests, nil
}

// Execute submits the operations as one atomic batch. An empty
// operation list is a no-op: a success result is returned without any
// network call. Remote failures are classified once (stale vs. other)
// before being returned.
func Execute(c *docs.Client, documentID string, operations []Operation, requiredRevisionID string) (*docs.BatchUpdateResponse, error) {
	if len(operations) == 0 {
		return &docs.BatchUpdateResponse{DocumentID: documentID}, nil
	}

	requests, err := Plan(operations)
	if err != nil {
		return nil, err
	}

	result, err := c.SubmitBatch(documentID, requests, requiredRevisionID)
	if err != nil {
		return nil, ClassifyRemoteError(err)
	}

	return result, nil
}

// Preview is the structural dry-run output. It is printed instead of
// calling the service.
type Preview struct {
	DryRun           bool           `json:"dryRun"`
	Operations       []string       `json:"operations,omitempty"`
	Requests         []docs.Request `json:"requests"`
	RequiredRevision string         `json:"requiredRevision,omitempty"`
}

// DryRun builds the preview for a batch without touching the network.
func DryRun(operations []Operation, requiredRevisionID string) (*Preview, error) {
	requests, err := Plan(operations)
	if err != nil {
		return nil, err
	}

	rendered := make([]string, len(operations))
	for i, op := range Sequence(operations) {
		rendered[i] = op.String()
	}

	return &Preview{
		DryRun:           true,
		Operations:       rendered,
		Requests:         requests,
		RequiredRevision: requiredRevisionID,
	}, nil
}

// BatchEntry is one element of a batch operations file: a JSON array of
// {"type", "startIndex", "endIndex"?, "text"?} objects.
type BatchEntry struct {
	Type       string `json:"type"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex,omitempty"`
	Text       string `json:"text,omitempty"`
}

// FromBatchEntries lowers batch file entries to primitive operations.
// Replace entries expand to their insert/delete pair. Unknown types are
// rejected before any network call.
func FromBatchEntries(entries []BatchEntry) ([]Operation, error) {
	var operations []Operation

	for _, entry := range entries {
		switch Kind(entry.Type) {
		case KindInsert:
			operations = append(operations, Insert(entry.StartIndex, entry.Text))
		case KindDelete:
			operations = append(operations, Delete(entry.StartIndex, entry.EndIndex))
		case KindReplace:
			pair, err := Replace(entry.StartIndex, entry.EndIndex, entry.Text)
			if err != nil {
				return nil, err
			}
			operations = append(operations, pair...)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidOperationKind, entry.Type)
		}
	}

	return operations, nil
}
