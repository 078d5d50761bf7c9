package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/holameeto/internal/adapters/browser"
	clipboardadapter "github.com/bnema/holameeto/internal/adapters/clipboard"
	"github.com/bnema/holameeto/internal/adapters/idgen"
	"github.com/bnema/holameeto/internal/adapters/notify/terminal"
	historyrender "github.com/bnema/holameeto/internal/adapters/render/history"
	chainstore "github.com/bnema/holameeto/internal/adapters/slot/chain"
	filestore "github.com/bnema/holameeto/internal/adapters/slot/file"
	sqlitestore "github.com/bnema/holameeto/internal/adapters/slot/sqlite"
	tomlstore "github.com/bnema/holameeto/internal/adapters/slot/toml"
	"github.com/bnema/holameeto/internal/application"
	"github.com/bnema/holameeto/internal/config"
	"github.com/bnema/holameeto/internal/domain"
	"github.com/bnema/holameeto/internal/logger"
	"github.com/bnema/holameeto/internal/ports"
	"github.com/spf13/viper"
)

// Replaced in tests so commands never touch the real desktop.
var (
	newClipboard = func() ports.Clipboard { return clipboardadapter.NewSystem() }
	newOpener    = func() ports.BrowserOpener { return browser.NewOpener() }
)

type app struct {
	meetings        *application.Service
	links           *application.LinkActions
	notifier        *terminal.Notifier
	historyRenderer func([]domain.MeetingRecord, historyrender.RenderOptions) (string, error)
	now             func() time.Time
	closers         []io.Closer
}

func wireApp(notifyOut io.Writer) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.SetLogLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("set log level: %w", err)
	}
	logger.SetLogFormat(cfg.Log.Format)

	clock := ports.SystemClock{}
	slots, closers, err := openSlotStore(context.Background(), cfg.Storage, clock)
	if err != nil {
		return nil, fmt.Errorf("wire slot store: %w", err)
	}

	notifier := terminal.New(notifyOut, terminal.DetectColorMode())
	links := application.NewLinkBuilder(idgen.NewGenerator(), clock, application.LinkOptions{
		BaseURL:    cfg.Meeting.BaseURL,
		RoomPrefix: cfg.Meeting.RoomPrefix,
	})
	meetings := application.NewService(links, application.NewHistoryStore(slots, notifier), notifier)

	return &app{
		meetings:        meetings,
		links:           application.NewLinkActions(meetings, newClipboard(), newOpener(), notifier),
		notifier:        notifier,
		historyRenderer: historyrender.Render,
		now:             time.Now,
		closers:         closers,
	}, nil
}

func openSlotStore(ctx context.Context, storage config.Storage, clock ports.Clock) (ports.SlotStore, []io.Closer, error) {
	switch storage.Backend {
	case config.BackendFile:
		return filestore.NewStore(storage.Path), nil, nil
	case config.BackendTOML:
		store, err := tomlstore.NewStore(storage.Path, clock)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.BackendSQLite:
		store, err := sqlitestore.Open(ctx, storage.Path, clock)
		if err != nil {
			return nil, nil, err
		}
		return store, []io.Closer{store}, nil
	case config.BackendChain:
		fallback := filestore.NewStore(storage.Path)

		primary, err := sqlitestore.Open(ctx, storage.SQLitePath, clock)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", storage.SQLitePath).Warn("sqlite slot store unavailable, using file store only")
			return fallback, nil, nil
		}

		store, err := chainstore.NewStore(primary, fallback)
		if err != nil {
			primary.Close()
			return nil, nil, err
		}
		return store, []io.Closer{primary}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, storage.Backend)
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			logger.L.WithError(err).Warn("failed to close slot store")
		}
	}
}
