package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const commandSync = "sync"

// command is one CLI verb. args is the exact number of positional
// arguments, -1 accepts any. offline commands skip key import and
// registration, interactive ones own the terminal and print nothing.
type command struct {
	usage       string
	args        int
	offline     bool
	interactive bool
	run         func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	commandSync: {usage: "sync", args: 0, run: (*App).runSync},
	"watch":     {usage: "watch", args: 0, interactive: true, run: (*App).runWatch},
	"pull":      {usage: "pull [collection...]", args: -1, run: (*App).runPull},
	"mute":      {usage: "mute <jid> <seconds>", args: 2, run: (*App).runMute},
	"pin":       {usage: "pin <jid>", args: 1, run: pushChatFlag(models.PinChat, true)},
	"unpin":     {usage: "unpin <jid>", args: 1, run: pushChatFlag(models.PinChat, false)},
	"archive":   {usage: "archive <jid>", args: 1, run: pushChatFlag(models.ArchiveChat, true)},
	"unarchive": {usage: "unarchive <jid>", args: 1, run: pushChatFlag(models.ArchiveChat, false)},
	"star":      {usage: "star <jid> <message-id>", args: 2, run: (*App).runStar},
	"push-name": {usage: "push-name <name>", args: 1, run: (*App).runPushName},
	"locale":    {usage: "locale <locale>", args: 1, run: (*App).runLocale},
	"version":   {usage: "version", args: 0, offline: true, run: (*App).runVersion},
}

// runSync delivers queued pushes, pulls once and keeps syncing in the
// background until ctx ends.
func (a *App) runSync(ctx context.Context, _ []string) error {
	if err := a.services.AppState.Flush(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("queued pushes not delivered")
		fmt.Fprintf(a.out, "sync warning: %v\n", err)
	}
	if err := a.services.AppState.Pull(ctx); err != nil {
		// the background job retries
		a.logger.Warn().Err(err).Msg("initial pull failed")
		fmt.Fprintf(a.out, "sync warning: %v\n", err)
	}
	if err := a.printStates(ctx, models.AllCollections()); err != nil {
		return err
	}

	return a.runWorkers(ctx)
}

// runWatch shows the dashboard while the background sync runs. Quitting
// the dashboard stops the workers.
func (a *App) runWatch(ctx context.Context, _ []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.runWorkers(groupCtx)
	})
	group.Go(func() error {
		defer cancel()
		return a.dashboard.Watch(groupCtx)
	})

	return group.Wait()
}

func (a *App) runPull(ctx context.Context, args []string) error {
	collections, err := parseCollections(args)
	if err != nil {
		return err
	}

	if err = a.services.AppState.Pull(ctx, collections...); err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	if len(collections) == 0 {
		collections = models.AllCollections()
	}
	return a.printStates(ctx, collections)
}

// runMute mutes a chat for the given number of seconds; zero or less unmutes.
func (a *App) runMute(ctx context.Context, args []string) error {
	seconds, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: seconds %q", ErrInvalidArgs, args[1])
	}

	now := a.now()
	var muteEnd time.Time
	if seconds > 0 {
		muteEnd = now.Add(time.Duration(seconds) * time.Second)
	}

	return a.push(ctx, models.MuteChat(args[0], muteEnd, now))
}

func (a *App) runStar(ctx context.Context, args []string) error {
	key := models.MessageKey{RemoteJID: args[0], ID: args[1], FromMe: true}
	return a.push(ctx, models.StarMessage(key, true, a.now()))
}

func (a *App) runPushName(ctx context.Context, args []string) error {
	return a.push(ctx, models.SetPushName(args[0], a.now()))
}

func (a *App) runLocale(ctx context.Context, args []string) error {
	return a.push(ctx, models.SetLocale(args[0], a.now()))
}

func (a *App) runVersion(_ context.Context, _ []string) error {
	fmt.Fprintf(a.out, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		a.buildInfo.BuildVersion(), a.buildInfo.BuildDate(), a.buildInfo.BuildCommit())
	return nil
}

func pushChatFlag(build func(jid string, on bool, at time.Time) models.PendingMutation, on bool) func(*App, context.Context, []string) error {
	return func(a *App, ctx context.Context, args []string) error {
		return a.push(ctx, build(args[0], on, a.now()))
	}
}

func (a *App) push(ctx context.Context, mutation models.PendingMutation) error {
	err := a.services.AppState.PushActions(ctx, mutation)
	if errors.Is(err, service.ErrPushQueued) {
		a.logger.Warn().Err(err).Msg("push queued")
		fmt.Fprintf(a.out, "queued %s, relay unreachable\n", mutation.Index.Kind())
		return nil
	}
	if err != nil {
		return fmt.Errorf("push %s: %w", mutation.Index.Kind(), err)
	}

	fmt.Fprintf(a.out, "pushed %s\n", mutation.Index.Kind())
	return nil
}

func (a *App) printStates(ctx context.Context, collections []models.Collection) error {
	for _, c := range collections {
		state, err := a.services.AppState.State(ctx, c)
		if err != nil {
			return fmt.Errorf("state of %s: %w", c, err)
		}
		fmt.Fprintf(a.out, "%-22s version=%d records=%d\n", c, state.Version, len(state.IndexValueMap))
		if n := a.services.AppState.Attempts(c); n > 0 {
			fmt.Fprintf(a.out, "%-22s failed decode attempts=%d\n", "", n)
		}
	}
	return nil
}

func parseCollections(args []string) ([]models.Collection, error) {
	collections := make([]models.Collection, 0, len(args))
	for _, arg := range args {
		c, err := models.ParseCollection(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		collections = append(collections, c)
	}
	return collections, nil
}
