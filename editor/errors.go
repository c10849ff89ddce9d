package editor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRange is reported when a delete or replace range has
	// end <= start. It is raised before any network call.
	ErrInvalidRange = errors.New("end index must be greater than start index")

	// ErrInvalidOperationKind is reported for an unrecognized operation
	// type in a batch file. It is raised before any network call.
	ErrInvalidOperationKind = errors.New("unknown operation type")

	// ErrStaleDocument is reported when the service rejects a batch
	// because the document changed after the revision token was read.
	ErrStaleDocument = errors.New("document was modified since last read")

	// ErrRemoteOperationFailed covers every other failure reported by
	// the document service.
	ErrRemoteOperationFailed = errors.New("document service operation failed")
)

// ClassifyRemoteError inspects a service error once and wraps it as
// either ErrStaleDocument or ErrRemoteOperationFailed.
//
// The service exposes no structured error code for precondition
// failures, so classification matches the error text. The heuristic is
// isolated here so a structured code can replace it in one place.
func ClassifyRemoteError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "requiredRevisionId") || strings.Contains(strings.ToLower(msg), "document has been modified") {
		return fmt.Errorf("%w: re-read the document or use --force to bypass the revision check: %v", ErrStaleDocument, err)
	}
	return fmt.Errorf("%w: %v", ErrRemoteOperationFailed, err)
}
