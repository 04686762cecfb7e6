package offline

import (
	"context"
	"errors"

	"github.com/fwojciec/offsync"
)

// Commands exposes an Engine through the operation set a host application
// binds to its UI. Each failure is reported as one *offsync.Error whose
// message describes the whole operation.
type Commands struct {
	Engine *Engine
}

// NewCommands returns Commands bound to e.
func NewCommands(e *Engine) *Commands {
	return &Commands{Engine: e}
}

// DownloadAndStore syncs urls, streaming progress to the engine's Notifier.
func (c *Commands) DownloadAndStore(ctx context.Context, urls []string) error {
	if _, err := c.Engine.Sync(ctx, urls); err != nil {
		return commandError("download and store", err)
	}
	return nil
}

// IsOfflineAvailable reports whether url is cached. When it is, the cached
// document is also delivered through the Notifier's ContentReady.
func (c *Commands) IsOfflineAvailable(ctx context.Context, url string) (bool, error) {
	ok, err := c.Engine.AvailableWithNotify(ctx, url)
	if err != nil {
		return false, commandError("check offline availability", err)
	}
	return ok, nil
}

// GetOfflineContentRaw returns the cached document for url without
// notifying anyone. ok is false when the URL is not cached.
func (c *Commands) GetOfflineContentRaw(ctx context.Context, url string) (content string, ok bool, err error) {
	content, ok, err = c.Engine.Content(ctx, url)
	if err != nil {
		return "", false, commandError("read offline content", err)
	}
	return content, ok, nil
}

// CheckOfflineAvailability reports availability for each of urls, in order.
func (c *Commands) CheckOfflineAvailability(ctx context.Context, urls []string) ([]bool, error) {
	results, err := c.Engine.CheckMany(ctx, urls)
	if err != nil {
		return nil, commandError("check offline availability", err)
	}
	return results, nil
}

func commandError(op string, err error) error {
	msg := err.Error()
	var e *offsync.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return offsync.Errorf(offsync.ErrorCode(err), "%s failed: %s", op, msg)
}
