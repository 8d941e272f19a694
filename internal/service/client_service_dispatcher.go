package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/multierr"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// errTargetNotFound marks a mutation whose chat, message or contact is not
// in the domain store. It never leaves the dispatcher.
var errTargetNotFound = errors.New("mutation target not found")

type dispatcher struct {
	domain store.DomainStore

	mu        sync.RWMutex
	listeners []Listener

	logger *logger.Logger
}

func NewDispatcher(domain store.DomainStore, logger *logger.Logger) Dispatcher {
	return &dispatcher{
		domain: domain,
		logger: logger,
	}
}

func (d *dispatcher) Observe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

func (d *dispatcher) InitialSyncCompleted() {
	for _, l := range d.snapshotListeners() {
		l.OnInitialSync()
	}
}

func (d *dispatcher) snapshotListeners() []Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.listeners)
}

func (d *dispatcher) Dispatch(ctx context.Context, mutations []models.Mutation) error {
	log := logger.FromContext(ctx)
	listeners := d.snapshotListeners()

	var errs error
	for _, m := range mutations {
		effect, apply := m, true
		if m.Operation == models.OperationRemove {
			effect, apply = removalEffect(m)
		}
		if effect.Value.Payload == nil {
			log.Debug().
				Str("func", "dispatcher.Dispatch").
				Str("kind", m.Index.Kind()).
				Msg("mutation carries no value, skipping")
			continue
		}

		var err error
		if apply {
			err = d.apply(ctx, effect)
		}
		switch {
		case errors.Is(err, errTargetNotFound), errors.Is(err, store.ErrNotFound):
			log.Debug().
				Err(err).
				Str("func", "dispatcher.Dispatch").
				Str("kind", m.Index.Kind()).
				Str("target", m.Index.TargetID()).
				Msg("mutation target is not known locally, skipping domain effect")
		case err != nil:
			log.Err(err).
				Str("func", "dispatcher.Dispatch").
				Str("kind", m.Index.Kind()).
				Msg("failed to apply mutation to domain store")
			errs = multierr.Append(errs, fmt.Errorf("apply %s: %w", m.Index.Kind(), err))
		}

		metrics.MutationsDispatchedTotal.WithLabelValues(string(effect.Value.Payload.Kind())).Inc()
		notify(listeners, effect)
	}

	return errs
}

// removalEffect turns a REMOVE into the mutation listeners and the domain
// store see. Reversible kinds become their cleared value (unmuted, unpinned,
// unlabeled, deleted...). Other kinds keep the removed value and have no
// domain effect.
func removalEffect(m models.Mutation) (models.Mutation, bool) {
	var cleared models.ActionPayload
	switch models.ActionKind(m.Index.Kind()) {
	case models.KindMute:
		cleared = models.MuteAction{}
	case models.KindPin:
		cleared = models.PinAction{}
	case models.KindArchive:
		cleared = models.ArchiveChatAction{}
	case models.KindStar:
		cleared = models.StarAction{}
	case models.KindLabelAssociation:
		cleared = models.LabelAssociationAction{}
	case models.KindLabelEdit:
		cleared = models.LabelEditAction{Deleted: true}
	case models.KindQuickReply:
		cleared = models.QuickReplyAction{Deleted: true}
	default:
		return m, false
	}

	m.Value.Payload = cleared
	return m, true
}

func notify(listeners []Listener, m models.Mutation) {
	payload := m.Value.Payload
	for _, l := range listeners {
		switch p := payload.(type) {
		case models.UnknownPayload:
		case models.PrimaryFeature:
			l.OnFeatures(p.Flags)
		default:
			if payload.Kind().IsSetting() {
				l.OnSetting(payload)
			} else {
				l.OnAction(payload, m.Index)
			}
		}
	}
}

func (d *dispatcher) apply(ctx context.Context, m models.Mutation) error {
	target := m.Index.TargetID()

	switch p := m.Value.Payload.(type) {
	case models.ClearChatAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			if p.MessageRange == nil {
				chat.Messages = nil
				return
			}
			chat.Messages = removeMessages(chat.Messages, rangeMessageIDs(p.MessageRange))
		})

	case models.DeleteChatAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			if p.MessageRange == nil {
				chat.Messages = nil
				return
			}
			chat.Messages = removeMessages(chat.Messages, rangeMessageIDs(p.MessageRange))
		})

	case models.ContactAction:
		return d.applyContact(ctx, target, p)

	case models.DeleteMessageForMeAction:
		return d.deleteMessage(ctx, target, m.Index.MessageID())

	case models.MarkChatAsReadAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			if p.Read {
				chat.UnreadCount = 0
			} else {
				chat.UnreadCount = -1
			}
		})

	case models.MuteAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			chat.MuteEndTimestamp = 0
			if p.Muted {
				chat.MuteEndTimestamp = p.MuteEndTimestamp
			}
		})

	case models.PinAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			chat.PinnedTimestamp = 0
			if p.Pinned {
				chat.PinnedTimestamp = m.Value.Timestamp
			}
		})

	case models.StarAction:
		messageID := m.Index.MessageID()
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			for i := range chat.Messages {
				if chat.Messages[i].ID == messageID {
					chat.Messages[i].Starred = p.Starred
				}
			}
		})

	case models.ArchiveChatAction:
		return d.updateChat(ctx, target, func(chat *models.Chat) {
			chat.Archived = p.Archived
		})

	case models.LabelEditAction:
		if p.Deleted {
			return d.domain.DeleteLabel(ctx, target)
		}
		return d.domain.SaveLabel(ctx, models.Label{
			ID:           target,
			Name:         p.Name,
			Color:        p.Color,
			PredefinedID: p.PredefinedID,
		})

	case models.LabelAssociationAction:
		labelID, chatJID := target, m.Index.MessageID()
		return d.updateChat(ctx, chatJID, func(chat *models.Chat) {
			chat.Labels = slices.DeleteFunc(chat.Labels, func(id string) bool { return id == labelID })
			if p.Labeled {
				chat.Labels = append(chat.Labels, labelID)
			}
		})

	case models.QuickReplyAction:
		if p.Deleted {
			return d.domain.DeleteQuickReply(ctx, target)
		}
		return d.domain.SaveQuickReply(ctx, models.QuickReply{
			ID:       target,
			Shortcut: p.Shortcut,
			Message:  p.Message,
			Keywords: p.Keywords,
			Count:    p.Count,
		})

	case models.RecentEmojiWeightsAction:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.RecentEmojis = p.Weights })
	case models.RecentStickerWeightsAction:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.RecentStickers = p.Weights })
	case models.LocaleSetting:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.Locale = p.Locale })
	case models.PushNameSetting:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.PushName = p.Name })
	case models.UnarchiveChatsSetting:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.UnarchiveChats = p.UnarchiveChats })
	case models.SecurityNotificationSetting:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.ShowSecurityNotifications = p.ShowNotification })
	case models.PrimaryFeature:
		return d.updateSettings(ctx, func(s *models.AccountSettings) { s.Features = p.Flags })

	case models.UnknownPayload:
		return nil
	default:
		return nil
	}
}

func (d *dispatcher) updateChat(ctx context.Context, jid string, update func(chat *models.Chat)) error {
	if jid == "" {
		return errTargetNotFound
	}

	chat, err := d.domain.GetChat(ctx, jid)
	if err != nil {
		return err
	}
	update(&chat)
	return d.domain.SaveChat(ctx, chat)
}

func (d *dispatcher) updateSettings(ctx context.Context, update func(s *models.AccountSettings)) error {
	settings, err := d.domain.Settings(ctx)
	if err != nil {
		return err
	}
	update(&settings)
	return d.domain.SaveSettings(ctx, settings)
}

// applyContact creates the contact and its chat when they are missing.
func (d *dispatcher) applyContact(ctx context.Context, jid string, p models.ContactAction) error {
	if jid == "" {
		return errTargetNotFound
	}

	contact, err := d.domain.GetContact(ctx, jid)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	contact.JID = jid
	contact.FullName = p.FullName
	contact.ShortName = p.FirstName
	if err = d.domain.SaveContact(ctx, contact); err != nil {
		return err
	}

	chat, err := d.domain.GetChat(ctx, jid)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	chat.JID = jid
	chat.Name = p.FullName
	return d.domain.SaveChat(ctx, chat)
}

// deleteMessage removes messageID from the chat jid, or from the newsletter
// jid when there is no such chat.
func (d *dispatcher) deleteMessage(ctx context.Context, jid, messageID string) error {
	if jid == "" || messageID == "" {
		return errTargetNotFound
	}
	drop := map[string]struct{}{messageID: {}}

	chat, err := d.domain.GetChat(ctx, jid)
	if err == nil {
		chat.Messages = removeMessages(chat.Messages, drop)
		return d.domain.SaveChat(ctx, chat)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	newsletter, err := d.domain.GetNewsletter(ctx, jid)
	if err != nil {
		return err
	}
	newsletter.Messages = removeMessages(newsletter.Messages, drop)
	return d.domain.SaveNewsletter(ctx, newsletter)
}

func rangeMessageIDs(r *models.MessageRange) map[string]struct{} {
	ids := make(map[string]struct{}, len(r.Messages))
	for _, m := range r.Messages {
		ids[m.Key.ID] = struct{}{}
	}
	return ids
}

func removeMessages(messages []models.Message, drop map[string]struct{}) []models.Message {
	return slices.DeleteFunc(messages, func(m models.Message) bool {
		_, ok := drop[m.ID]
		return ok
	})
}
