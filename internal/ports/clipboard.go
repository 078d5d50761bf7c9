package ports

import "context"

// Clipboard writes text to the system clipboard. Implementations return
// domain.ErrClipboardUnavailable when no clipboard can be reached.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
