// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ActionKind is the first element of a mutation index. It names the
// action or setting carried by the mutation.
type ActionKind string

const (
	KindStar                 ActionKind = "star"
	KindMute                 ActionKind = "mute"
	KindPin                  ActionKind = "pin_v1"
	KindArchive              ActionKind = "archive"
	KindClearChat            ActionKind = "clearChat"
	KindDeleteChat           ActionKind = "deleteChat"
	KindDeleteMessageForMe   ActionKind = "deleteMessageForMe"
	KindMarkChatAsRead       ActionKind = "markChatAsRead"
	KindContact              ActionKind = "contact"
	KindLabelEdit            ActionKind = "label_edit"
	KindLabelAssociation     ActionKind = "label_jid"
	KindQuickReply           ActionKind = "quick_reply"
	KindRecentEmojiWeights   ActionKind = "recent_emoji_weights"
	KindRecentStickerWeights ActionKind = "recent_sticker_weights"
	KindLocaleSetting        ActionKind = "setting_locale"
	KindPushNameSetting      ActionKind = "setting_pushName"
	KindUnarchiveChats       ActionKind = "setting_unarchiveChats"
	KindSecurityNotification ActionKind = "setting_securityNotification"
	KindPrimaryFeature       ActionKind = "primary_feature"
	KindUnknown              ActionKind = "unknown"
)

type kindInfo struct {
	collection Collection
	version    int32
	setting    bool
}

var kinds = map[ActionKind]kindInfo{
	KindStar:                 {collection: RegularHigh, version: 2},
	KindMute:                 {collection: RegularHigh, version: 2},
	KindPin:                  {collection: RegularLow, version: 5},
	KindArchive:              {collection: RegularLow, version: 3},
	KindClearChat:            {collection: RegularHigh, version: 6},
	KindDeleteChat:           {collection: RegularHigh, version: 6},
	KindDeleteMessageForMe:   {collection: RegularHigh, version: 3},
	KindMarkChatAsRead:       {collection: RegularLow, version: 3},
	KindContact:              {collection: CriticalUnblockLow, version: 2},
	KindLabelEdit:            {collection: Regular, version: 3},
	KindLabelAssociation:     {collection: Regular, version: 3},
	KindQuickReply:           {collection: Regular, version: 2},
	KindRecentEmojiWeights:   {collection: RegularLow, version: 1},
	KindRecentStickerWeights: {collection: RegularLow, version: 1},
	KindLocaleSetting:        {collection: CriticalBlock, version: 3, setting: true},
	KindPushNameSetting:      {collection: CriticalBlock, version: 1, setting: true},
	KindUnarchiveChats:       {collection: RegularLow, version: 4, setting: true},
	KindSecurityNotification: {collection: CriticalBlock, version: 1, setting: true},
	KindPrimaryFeature:       {collection: Regular, version: 1},
}

// Collection returns the collection mutations of this kind are pushed to.
func (k ActionKind) Collection() Collection {
	if info, ok := kinds[k]; ok {
		return info.collection
	}
	return Regular
}

// Version returns the action version written into SyncActionData.
func (k ActionKind) Version() int32 {
	if info, ok := kinds[k]; ok {
		return info.version
	}
	return 1
}

// IsSetting reports whether the kind is an account-wide setting rather than
// an action on a chat, contact or message.
func (k ActionKind) IsSetting() bool {
	return kinds[k].setting
}

// ActionPayload is the closed set of values a mutation can carry.
// Implementations are the structs in this file; UnknownPayload catches
// anything a newer peer sent that this build does not understand.
type ActionPayload interface {
	Kind() ActionKind
	actionPayload()
}

// SyncActionValue is the decrypted value of a mutation.
type SyncActionValue struct {
	// Timestamp is the time of the action in milliseconds since the epoch.
	Timestamp int64

	// Payload is nil when the value carries no known field at all.
	Payload ActionPayload
}

// SyncActionData is the plaintext that gets encrypted into a value blob.
type SyncActionData struct {
	Index   []byte
	Value   *SyncActionValue
	Padding []byte
	Version int32
}

// MessageKey identifies a single message.
type MessageKey struct {
	RemoteJID   string
	FromMe      bool
	ID          string
	Participant string
}

// RangeMessage is a message listed in a MessageRange.
type RangeMessage struct {
	Key       MessageKey
	Timestamp int64
}

// MessageRange scopes chat level actions to a set of messages.
type MessageRange struct {
	LastMessageTimestamp       int64
	LastSystemMessageTimestamp int64
	Messages                   []RangeMessage
}

type StarAction struct {
	Starred bool
}

type MuteAction struct {
	Muted            bool
	MuteEndTimestamp int64
	AutoMuted        bool
}

type PinAction struct {
	Pinned bool
}

type ArchiveChatAction struct {
	Archived     bool
	MessageRange *MessageRange
}

// ClearChatAction removes messages of a chat. A nil MessageRange clears everything.
type ClearChatAction struct {
	MessageRange *MessageRange
}

type DeleteChatAction struct {
	MessageRange *MessageRange
}

type DeleteMessageForMeAction struct {
	DeleteMedia      bool
	MessageTimestamp int64
}

type MarkChatAsReadAction struct {
	Read         bool
	MessageRange *MessageRange
}

type ContactAction struct {
	FullName  string
	FirstName string
	LidJID    string
}

type LabelEditAction struct {
	Name         string
	Color        int32
	PredefinedID int32
	Deleted      bool
}

type LabelAssociationAction struct {
	Labeled bool
}

type QuickReplyAction struct {
	Shortcut string
	Message  string
	Keywords []string
	Count    int32
	Deleted  bool
}

// Weight is a single recency weight of an emoji or sticker.
type Weight struct {
	Key    string
	Weight float32
}

type RecentEmojiWeightsAction struct {
	Weights []Weight
}

type RecentStickerWeightsAction struct {
	Weights []Weight
}

type LocaleSetting struct {
	Locale string
}

type PushNameSetting struct {
	Name string
}

type UnarchiveChatsSetting struct {
	UnarchiveChats bool
}

type SecurityNotificationSetting struct {
	ShowNotification bool
}

type PrimaryFeature struct {
	Flags []string
}

// UnknownPayload keeps the raw bytes of a SyncActionValue field this build
// does not know, so it can be re-encoded unchanged.
type UnknownPayload struct {
	Field int32
	Raw   []byte
}

func (StarAction) Kind() ActionKind                  { return KindStar }
func (MuteAction) Kind() ActionKind                  { return KindMute }
func (PinAction) Kind() ActionKind                   { return KindPin }
func (ArchiveChatAction) Kind() ActionKind           { return KindArchive }
func (ClearChatAction) Kind() ActionKind             { return KindClearChat }
func (DeleteChatAction) Kind() ActionKind            { return KindDeleteChat }
func (DeleteMessageForMeAction) Kind() ActionKind    { return KindDeleteMessageForMe }
func (MarkChatAsReadAction) Kind() ActionKind        { return KindMarkChatAsRead }
func (ContactAction) Kind() ActionKind               { return KindContact }
func (LabelEditAction) Kind() ActionKind             { return KindLabelEdit }
func (LabelAssociationAction) Kind() ActionKind      { return KindLabelAssociation }
func (QuickReplyAction) Kind() ActionKind            { return KindQuickReply }
func (RecentEmojiWeightsAction) Kind() ActionKind    { return KindRecentEmojiWeights }
func (RecentStickerWeightsAction) Kind() ActionKind  { return KindRecentStickerWeights }
func (LocaleSetting) Kind() ActionKind               { return KindLocaleSetting }
func (PushNameSetting) Kind() ActionKind             { return KindPushNameSetting }
func (UnarchiveChatsSetting) Kind() ActionKind       { return KindUnarchiveChats }
func (SecurityNotificationSetting) Kind() ActionKind { return KindSecurityNotification }
func (PrimaryFeature) Kind() ActionKind              { return KindPrimaryFeature }
func (UnknownPayload) Kind() ActionKind              { return KindUnknown }

func (StarAction) actionPayload()                  {}
func (MuteAction) actionPayload()                  {}
func (PinAction) actionPayload()                   {}
func (ArchiveChatAction) actionPayload()           {}
func (ClearChatAction) actionPayload()             {}
func (DeleteChatAction) actionPayload()            {}
func (DeleteMessageForMeAction) actionPayload()    {}
func (MarkChatAsReadAction) actionPayload()        {}
func (ContactAction) actionPayload()               {}
func (LabelEditAction) actionPayload()             {}
func (LabelAssociationAction) actionPayload()      {}
func (QuickReplyAction) actionPayload()            {}
func (RecentEmojiWeightsAction) actionPayload()    {}
func (RecentStickerWeightsAction) actionPayload()  {}
func (LocaleSetting) actionPayload()               {}
func (PushNameSetting) actionPayload()             {}
func (UnarchiveChatsSetting) actionPayload()       {}
func (SecurityNotificationSetting) actionPayload() {}
func (PrimaryFeature) actionPayload()              {}
func (UnknownPayload) actionPayload()              {}
