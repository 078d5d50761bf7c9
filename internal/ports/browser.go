package ports

import "context"

type BrowserOpener interface {
	Open(ctx context.Context, url string) error
}
