// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Chat is the local view of a conversation that app state actions target.
type Chat struct {
	JID              string    `json:"jid"`
	Name             string    `json:"name,omitempty"`
	Archived         bool      `json:"archived,omitempty"`
	PinnedTimestamp  int64     `json:"pinned_timestamp,omitempty"`
	MuteEndTimestamp int64     `json:"mute_end_timestamp,omitempty"`
	UnreadCount      int       `json:"unread_count"`
	Labels           []string  `json:"labels,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
}

// Contact is an address book entry.
type Contact struct {
	JID       string `json:"jid"`
	FullName  string `json:"full_name,omitempty"`
	ShortName string `json:"short_name,omitempty"`
}

// Newsletter is a broadcast channel the account follows.
type Newsletter struct {
	JID      string    `json:"jid"`
	Name     string    `json:"name,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

// Message is the part of a message app state actions care about.
type Message struct {
	ID        string `json:"id"`
	FromMe    bool   `json:"from_me,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Starred   bool   `json:"starred,omitempty"`
}

// Label is a user defined chat label.
type Label struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        int32  `json:"color"`
	PredefinedID int32  `json:"predefined_id,omitempty"`
}

// QuickReply is a saved message template.
type QuickReply struct {
	ID       string   `json:"id"`
	Shortcut string   `json:"shortcut"`
	Message  string   `json:"message"`
	Keywords []string `json:"keywords,omitempty"`
	Count    int32    `json:"count,omitempty"`
}

// AccountSettings are the account wide values carried by setting mutations.
type AccountSettings struct {
	PushName                  string   `json:"push_name,omitempty"`
	Locale                    string   `json:"locale,omitempty"`
	UnarchiveChats            bool     `json:"unarchive_chats,omitempty"`
	ShowSecurityNotifications bool     `json:"show_security_notifications,omitempty"`
	RecentEmojis              []Weight `json:"recent_emojis,omitempty"`
	RecentStickers            []Weight `json:"recent_stickers,omitempty"`
	Features                  []string `json:"features,omitempty"`
}
