// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Mutation is a decrypted and authenticated mutation ready for dispatch.
type Mutation struct {
	Collection Collection
	Operation  Operation
	Index      MessageIndex
	Value      SyncActionValue
	Padding    []byte
	Version    int32

	// IndexMAC and ValueMAC are the tags the mutation was mixed into the
	// collection hash with.
	IndexMAC []byte
	ValueMAC []byte
}

// PendingMutation is a locally originated change waiting to be pushed.
type PendingMutation struct {
	Collection Collection
	Operation  Operation
	Index      MessageIndex
	Value      SyncActionValue
	Version    int32
}

// PendingBatch is a push that could not reach the relay and waits in the
// device queue for the next sync.
type PendingBatch struct {
	ID         string
	Collection Collection
	Mutations  []PendingMutation
	QueuedAt   time.Time
}

// NewPendingMutation builds a SET mutation for payload targeting the given
// index suffix. The collection and action version come from the payload kind.
func NewPendingMutation(payload ActionPayload, at time.Time, target ...string) PendingMutation {
	kind := payload.Kind()
	index := append(MessageIndex{string(kind)}, target...)
	return PendingMutation{
		Collection: kind.Collection(),
		Operation:  OperationSet,
		Index:      index,
		Value:      SyncActionValue{Timestamp: at.UnixMilli(), Payload: payload},
		Version:    kind.Version(),
	}
}

// Removal returns the REMOVE of the same index. The value is kept so the
// receiving devices still know what was removed.
func (m PendingMutation) Removal() PendingMutation {
	m.Operation = OperationRemove
	return m
}

// MuteChat mutes chatJID until muteEnd. A zero muteEnd unmutes the chat.
func MuteChat(chatJID string, muteEnd time.Time, at time.Time) PendingMutation {
	action := MuteAction{}
	if !muteEnd.IsZero() {
		action.Muted = true
		action.MuteEndTimestamp = muteEnd.UnixMilli()
	}
	return NewPendingMutation(action, at, chatJID)
}

// PinChat pins or unpins chatJID.
func PinChat(chatJID string, pinned bool, at time.Time) PendingMutation {
	return NewPendingMutation(PinAction{Pinned: pinned}, at, chatJID)
}

// ArchiveChat archives or unarchives chatJID.
func ArchiveChat(chatJID string, archived bool, at time.Time) PendingMutation {
	return NewPendingMutation(ArchiveChatAction{Archived: archived}, at, chatJID)
}

// StarMessage stars or unstars a message.
func StarMessage(key MessageKey, starred bool, at time.Time) PendingMutation {
	return NewPendingMutation(StarAction{Starred: starred}, at, messageTarget(key)...)
}

// MarkChatAsRead marks chatJID read or unread.
func MarkChatAsRead(chatJID string, read bool, at time.Time) PendingMutation {
	return NewPendingMutation(MarkChatAsReadAction{Read: read}, at, chatJID)
}

// DeleteMessageForMe hides a message on every device of this account.
func DeleteMessageForMe(key MessageKey, deleteMedia bool, messageTimestamp int64, at time.Time) PendingMutation {
	action := DeleteMessageForMeAction{DeleteMedia: deleteMedia, MessageTimestamp: messageTimestamp}
	return NewPendingMutation(action, at, messageTarget(key)...)
}

// ClearChat removes the messages of chatJID, optionally limited by messageRange.
func ClearChat(chatJID string, messageRange *MessageRange, deleteStarred bool, at time.Time) PendingMutation {
	return NewPendingMutation(ClearChatAction{MessageRange: messageRange}, at, chatJID, boolIndex(deleteStarred), "0")
}

// DeleteChat deletes chatJID.
func DeleteChat(chatJID string, messageRange *MessageRange, at time.Time) PendingMutation {
	return NewPendingMutation(DeleteChatAction{MessageRange: messageRange}, at, chatJID, "1")
}

// RenameContact changes the display names of a contact.
func RenameContact(jid, fullName, firstName string, at time.Time) PendingMutation {
	return NewPendingMutation(ContactAction{FullName: fullName, FirstName: firstName}, at, jid)
}

// EditLabel creates, renames or deletes a label.
func EditLabel(labelID string, action LabelEditAction, at time.Time) PendingMutation {
	return NewPendingMutation(action, at, labelID)
}

// AssociateLabel links or unlinks a label and a chat.
func AssociateLabel(labelID, chatJID string, labeled bool, at time.Time) PendingMutation {
	return NewPendingMutation(LabelAssociationAction{Labeled: labeled}, at, labelID, chatJID)
}

// SetQuickReply creates, updates or deletes the quick reply id.
func SetQuickReply(id string, action QuickReplyAction, at time.Time) PendingMutation {
	return NewPendingMutation(action, at, id)
}

// SetPushName changes the account push name.
func SetPushName(name string, at time.Time) PendingMutation {
	return NewPendingMutation(PushNameSetting{Name: name}, at)
}

// SetLocale changes the account locale.
func SetLocale(locale string, at time.Time) PendingMutation {
	return NewPendingMutation(LocaleSetting{Locale: locale}, at)
}

// SetUnarchiveChats toggles whether archived chats unarchive on new messages.
func SetUnarchiveChats(unarchive bool, at time.Time) PendingMutation {
	return NewPendingMutation(UnarchiveChatsSetting{UnarchiveChats: unarchive}, at)
}

// SetSecurityNotifications toggles security code change notifications.
func SetSecurityNotifications(show bool, at time.Time) PendingMutation {
	return NewPendingMutation(SecurityNotificationSetting{ShowNotification: show}, at)
}

func messageTarget(key MessageKey) []string {
	participant := key.Participant
	if participant == "" {
		participant = "0"
	}
	return []string{key.RemoteJID, key.ID, boolIndex(key.FromMe), participant}
}

