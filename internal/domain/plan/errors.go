package plan

import "errors"

// ErrIncompleteInput indicates a required upstream result was absent
// at assembly time. The assembler never invents placeholder data for
// required fields.
var ErrIncompleteInput = errors.New("incomplete plan input")
