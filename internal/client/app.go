package client

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/tui"
	"github.com/MKhiriev/go-app-state-sync/internal/workers"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// Dashboard is the interactive view of the watch command.
type Dashboard interface {
	Watch(ctx context.Context) error
}

type App struct {
	services  *service.ClientServices
	dashboard Dashboard
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo
	out       io.Writer
	now       func() time.Time
	logger    *logger.Logger
}

func NewApp(services *service.ClientServices, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) (*App, error) {
	if services == nil || cfg == nil {
		return nil, fmt.Errorf("client app: services and config are required")
	}

	return &App{
		services:  services,
		dashboard: tui.New(services.AppState, buildInfo, logger),
		cfg:       cfg,
		buildInfo: buildInfo,
		out:       out,
		now:       time.Now,
		logger:    logger,
	}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	name := commandSync
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if cmd.args >= 0 && len(args) != cmd.args {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}
	if cmd.offline {
		return cmd.run(a, ctx, args)
	}

	if err := a.importRootKey(ctx); err != nil {
		return err
	}
	if _, err := a.services.Auth.Register(ctx); err != nil {
		return fmt.Errorf("register device: %w", err)
	}

	if !cmd.interactive {
		a.services.AppState.Observe(a.printer())
	}

	return cmd.run(a, ctx, args)
}

// importRootKey stores the key from the config, if any. Keys provisioned
// earlier stay in the local store.
func (a *App) importRootKey(ctx context.Context) error {
	if a.cfg.Sync.RootKeyHex == "" {
		return nil
	}

	keyData, err := hex.DecodeString(a.cfg.Sync.RootKeyHex)
	if err != nil {
		return fmt.Errorf("%w: root key: %w", ErrInvalidArgs, err)
	}
	keyID, err := hex.DecodeString(a.cfg.Sync.RootKeyID)
	if err != nil {
		return fmt.Errorf("%w: root key id: %w", ErrInvalidArgs, err)
	}

	err = a.services.Keys.Import(ctx, models.AppStateSyncKey{
		KeyID:     keyID,
		KeyData:   keyData,
		Timestamp: a.now(),
	})
	if err != nil {
		return fmt.Errorf("import root key: %w", err)
	}

	a.logger.Debug().Str("key_id", a.cfg.Sync.RootKeyID).Msg("root key imported")
	return nil
}

func (a *App) printer() service.Listener {
	return service.ListenerFuncs{
		Action: func(action models.ActionPayload, index models.MessageIndex) {
			fmt.Fprintf(a.out, "action  %-22s %s\n", action.Kind(), index.TargetID())
		},
		Setting: func(setting models.ActionPayload) {
			fmt.Fprintf(a.out, "setting %s\n", setting.Kind())
		},
		Features: func(flags []string) {
			fmt.Fprintf(a.out, "features %v\n", flags)
		},
		InitialSync: func() {
			fmt.Fprintln(a.out, "initial sync completed")
		},
	}
}

func (a *App) runWorkers(ctx context.Context) error {
	list := []workers.Worker{
		workers.NewSyncWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval, a.logger),
	}
	if a.cfg.App.MetricsAddress != "" {
		list = append(list, workers.NewMetricsWorker(a.cfg.App.MetricsAddress, a.logger))
	}

	return workers.NewWorkers(list...).Run(ctx)
}
