// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wire

import (
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// SyncActionValue field numbers.
const (
	fieldTimestamp            protowire.Number = 1
	fieldStar                 protowire.Number = 2
	fieldContact              protowire.Number = 3
	fieldMute                 protowire.Number = 4
	fieldPin                  protowire.Number = 5
	fieldSecurityNotification protowire.Number = 6
	fieldPushName             protowire.Number = 7
	fieldQuickReply           protowire.Number = 8
	fieldRecentStickerWeights protowire.Number = 9
	fieldRecentEmojiWeights   protowire.Number = 11
	fieldLabelEdit            protowire.Number = 14
	fieldLabelAssociation     protowire.Number = 15
	fieldLocale               protowire.Number = 16
	fieldArchiveChat          protowire.Number = 17
	fieldDeleteMessageForMe   protowire.Number = 18
	fieldMarkChatAsRead       protowire.Number = 20
	fieldClearChat            protowire.Number = 21
	fieldDeleteChat           protowire.Number = 22
	fieldUnarchiveChats       protowire.Number = 23
	fieldPrimaryFeature       protowire.Number = 24
)

// EncodeSyncActionData serializes the plaintext of a mutation.
func EncodeSyncActionData(d *models.SyncActionData) []byte {
	var b []byte
	b = appendBytes(b, 1, d.Index)
	if d.Value != nil {
		b = appendMessage(b, 2, EncodeSyncActionValue(d.Value))
	}
	b = appendBytes(b, 3, d.Padding)
	b = appendInt32(b, 4, d.Version)
	return b
}

// DecodeSyncActionData parses the plaintext of a mutation.
func DecodeSyncActionData(b []byte) (*models.SyncActionData, error) {
	d := &models.SyncActionData{}
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			d.Index = f.clone()
		case 2:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			v, err := DecodeSyncActionValue(f.bytes)
			if err != nil {
				return err
			}
			d.Value = v
		case 3:
			d.Padding = f.clone()
		case 4:
			d.Version = f.int32()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode sync action data: %w", err)
	}
	return d, nil
}

// EncodeSyncActionValue serializes a SyncActionValue.
func EncodeSyncActionValue(v *models.SyncActionValue) []byte {
	var b []byte
	b = appendInt64(b, fieldTimestamp, v.Timestamp)
	if v.Payload == nil {
		return b
	}
	num, msg := encodePayload(v.Payload)
	return appendMessage(b, num, msg)
}

// DecodeSyncActionValue parses a SyncActionValue. The first payload field
// found wins; fields this build does not know become UnknownPayload.
func DecodeSyncActionValue(b []byte) (*models.SyncActionValue, error) {
	v := &models.SyncActionValue{}
	err := forEachField(b, func(f field) error {
		if f.num == fieldTimestamp {
			v.Timestamp = f.int64()
			return nil
		}
		if f.typ != protowire.BytesType || v.Payload != nil {
			return nil
		}
		payload, err := decodePayload(f.num, f.bytes)
		if err != nil {
			return fmt.Errorf("field %d: %w", f.num, err)
		}
		v.Payload = payload
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode sync action value: %w", err)
	}
	return v, nil
}

func encodePayload(p models.ActionPayload) (protowire.Number, []byte) {
	var b []byte
	switch a := p.(type) {
	case models.StarAction:
		return fieldStar, appendBool(b, 1, a.Starred)
	case models.ContactAction:
		b = appendString(b, 1, a.FullName)
		b = appendString(b, 2, a.FirstName)
		b = appendString(b, 3, a.LidJID)
		return fieldContact, b
	case models.MuteAction:
		b = appendBool(b, 1, a.Muted)
		b = appendInt64(b, 2, a.MuteEndTimestamp)
		b = appendBool(b, 3, a.AutoMuted)
		return fieldMute, b
	case models.PinAction:
		return fieldPin, appendBool(b, 1, a.Pinned)
	case models.SecurityNotificationSetting:
		return fieldSecurityNotification, appendBool(b, 1, a.ShowNotification)
	case models.PushNameSetting:
		return fieldPushName, appendString(b, 1, a.Name)
	case models.QuickReplyAction:
		b = appendString(b, 1, a.Shortcut)
		b = appendString(b, 2, a.Message)
		b = appendRepeatedString(b, 3, a.Keywords)
		b = appendInt32(b, 4, a.Count)
		b = appendBool(b, 5, a.Deleted)
		return fieldQuickReply, b
	case models.RecentStickerWeightsAction:
		return fieldRecentStickerWeights, encodeWeights(a.Weights)
	case models.RecentEmojiWeightsAction:
		return fieldRecentEmojiWeights, encodeWeights(a.Weights)
	case models.LabelEditAction:
		b = appendString(b, 1, a.Name)
		b = appendInt32(b, 2, a.Color)
		b = appendInt32(b, 3, a.PredefinedID)
		b = appendBool(b, 4, a.Deleted)
		return fieldLabelEdit, b
	case models.LabelAssociationAction:
		return fieldLabelAssociation, appendBool(b, 1, a.Labeled)
	case models.LocaleSetting:
		return fieldLocale, appendString(b, 1, a.Locale)
	case models.ArchiveChatAction:
		b = appendBool(b, 1, a.Archived)
		b = appendMessageRange(b, 2, a.MessageRange)
		return fieldArchiveChat, b
	case models.DeleteMessageForMeAction:
		b = appendBool(b, 1, a.DeleteMedia)
		b = appendInt64(b, 2, a.MessageTimestamp)
		return fieldDeleteMessageForMe, b
	case models.MarkChatAsReadAction:
		b = appendBool(b, 1, a.Read)
		b = appendMessageRange(b, 2, a.MessageRange)
		return fieldMarkChatAsRead, b
	case models.ClearChatAction:
		return fieldClearChat, appendMessageRange(b, 1, a.MessageRange)
	case models.DeleteChatAction:
		return fieldDeleteChat, appendMessageRange(b, 1, a.MessageRange)
	case models.UnarchiveChatsSetting:
		return fieldUnarchiveChats, appendBool(b, 1, a.UnarchiveChats)
	case models.PrimaryFeature:
		return fieldPrimaryFeature, appendRepeatedString(b, 1, a.Flags)
	case models.UnknownPayload:
		return protowire.Number(a.Field), a.Raw
	default:
		return 0, nil
	}
}

func decodePayload(num protowire.Number, b []byte) (models.ActionPayload, error) {
	var err error
	switch num {
	case fieldStar:
		var a models.StarAction
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Starred = f.bool()
			}
			return nil
		})
		return a, err
	case fieldContact:
		var a models.ContactAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.FullName = f.string()
			case 2:
				a.FirstName = f.string()
			case 3:
				a.LidJID = f.string()
			}
			return nil
		})
		return a, err
	case fieldMute:
		var a models.MuteAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.Muted = f.bool()
			case 2:
				a.MuteEndTimestamp = f.int64()
			case 3:
				a.AutoMuted = f.bool()
			}
			return nil
		})
		return a, err
	case fieldPin:
		var a models.PinAction
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Pinned = f.bool()
			}
			return nil
		})
		return a, err
	case fieldSecurityNotification:
		var a models.SecurityNotificationSetting
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.ShowNotification = f.bool()
			}
			return nil
		})
		return a, err
	case fieldPushName:
		var a models.PushNameSetting
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Name = f.string()
			}
			return nil
		})
		return a, err
	case fieldQuickReply:
		var a models.QuickReplyAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.Shortcut = f.string()
			case 2:
				a.Message = f.string()
			case 3:
				a.Keywords = append(a.Keywords, f.string())
			case 4:
				a.Count = f.int32()
			case 5:
				a.Deleted = f.bool()
			}
			return nil
		})
		return a, err
	case fieldRecentStickerWeights:
		weights, err := decodeWeights(b)
		return models.RecentStickerWeightsAction{Weights: weights}, err
	case fieldRecentEmojiWeights:
		weights, err := decodeWeights(b)
		return models.RecentEmojiWeightsAction{Weights: weights}, err
	case fieldLabelEdit:
		var a models.LabelEditAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.Name = f.string()
			case 2:
				a.Color = f.int32()
			case 3:
				a.PredefinedID = f.int32()
			case 4:
				a.Deleted = f.bool()
			}
			return nil
		})
		return a, err
	case fieldLabelAssociation:
		var a models.LabelAssociationAction
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Labeled = f.bool()
			}
			return nil
		})
		return a, err
	case fieldLocale:
		var a models.LocaleSetting
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Locale = f.string()
			}
			return nil
		})
		return a, err
	case fieldArchiveChat:
		var a models.ArchiveChatAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.Archived = f.bool()
			case 2:
				r, err := decodeMessageRange(f.bytes)
				a.MessageRange = r
				return err
			}
			return nil
		})
		return a, err
	case fieldDeleteMessageForMe:
		var a models.DeleteMessageForMeAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.DeleteMedia = f.bool()
			case 2:
				a.MessageTimestamp = f.int64()
			}
			return nil
		})
		return a, err
	case fieldMarkChatAsRead:
		var a models.MarkChatAsReadAction
		err = forEachField(b, func(f field) error {
			switch f.num {
			case 1:
				a.Read = f.bool()
			case 2:
				r, err := decodeMessageRange(f.bytes)
				a.MessageRange = r
				return err
			}
			return nil
		})
		return a, err
	case fieldClearChat:
		var a models.ClearChatAction
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				r, err := decodeMessageRange(f.bytes)
				a.MessageRange = r
				return err
			}
			return nil
		})
		return a, err
	case fieldDeleteChat:
		var a models.DeleteChatAction
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				r, err := decodeMessageRange(f.bytes)
				a.MessageRange = r
				return err
			}
			return nil
		})
		return a, err
	case fieldUnarchiveChats:
		var a models.UnarchiveChatsSetting
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.UnarchiveChats = f.bool()
			}
			return nil
		})
		return a, err
	case fieldPrimaryFeature:
		var a models.PrimaryFeature
		err = forEachField(b, func(f field) error {
			if f.num == 1 {
				a.Flags = append(a.Flags, f.string())
			}
			return nil
		})
		return a, err
	default:
		raw := make([]byte, len(b))
		copy(raw, b)
		return models.UnknownPayload{Field: int32(num), Raw: raw}, nil
	}
}

func encodeWeights(weights []models.Weight) []byte {
	var b []byte
	for _, w := range weights {
		var entry []byte
		entry = appendString(entry, 1, w.Key)
		entry = appendFloat(entry, 2, w.Weight)
		b = appendMessage(b, 1, entry)
	}
	return b
}

func decodeWeights(b []byte) ([]models.Weight, error) {
	var out []models.Weight
	err := forEachField(b, func(f field) error {
		if f.num != 1 || f.typ != protowire.BytesType {
			return nil
		}
		var w models.Weight
		err := forEachField(f.bytes, func(f field) error {
			switch f.num {
			case 1:
				w.Key = f.string()
			case 2:
				w.Weight = f.float32()
			}
			return nil
		})
		if err != nil {
			return err
		}
		out = append(out, w)
		return nil
	})
	return out, err
}

func appendMessageRange(b []byte, num protowire.Number, r *models.MessageRange) []byte {
	if r == nil {
		return b
	}
	var msg []byte
	msg = appendInt64(msg, 1, r.LastMessageTimestamp)
	msg = appendInt64(msg, 2, r.LastSystemMessageTimestamp)
	for _, m := range r.Messages {
		var key []byte
		key = appendString(key, 1, m.Key.RemoteJID)
		key = appendBool(key, 2, m.Key.FromMe)
		key = appendString(key, 3, m.Key.ID)
		key = appendString(key, 4, m.Key.Participant)

		var entry []byte
		entry = appendMessage(entry, 1, key)
		entry = appendInt64(entry, 2, m.Timestamp)
		msg = appendMessage(msg, 3, entry)
	}
	return appendMessage(b, num, msg)
}

func decodeMessageRange(b []byte) (*models.MessageRange, error) {
	r := &models.MessageRange{}
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			r.LastMessageTimestamp = f.int64()
		case 2:
			r.LastSystemMessageTimestamp = f.int64()
		case 3:
			var m models.RangeMessage
			err := forEachField(f.bytes, func(f field) error {
				switch f.num {
				case 1:
					return forEachField(f.bytes, func(f field) error {
						switch f.num {
						case 1:
							m.Key.RemoteJID = f.string()
						case 2:
							m.Key.FromMe = f.bool()
						case 3:
							m.Key.ID = f.string()
						case 4:
							m.Key.Participant = f.string()
						}
						return nil
					})
				case 2:
					m.Timestamp = f.int64()
				}
				return nil
			})
			if err != nil {
				return err
			}
			r.Messages = append(r.Messages, m)
		}
		return nil
	})
	return r, err
}
