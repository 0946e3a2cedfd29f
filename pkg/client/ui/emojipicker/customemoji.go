package emojipicker

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ImageSetEventType is the room state event carrying a custom emoji set
const ImageSetEventType = "im.ponies.room_emotes"

// JoinRule is a room's join rule
type JoinRule string

const (
	JoinPublic  JoinRule = "public"
	JoinInvite  JoinRule = "invite"
	JoinKnock   JoinRule = "knock"
	JoinPrivate JoinRule = "private"
)

// Room is the part of a room an image set load needs
type Room interface {
	ID() string
	JoinRule() JoinRule
}

// StateEvent is an image set state event
type StateEvent struct {
	ID      string          `json:"event_id"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

type imageSetContent struct {
	Images map[string]struct {
		URL string `json:"url"`
	} `json:"images"`
}

// LoadImageSet turns an image set event into custom emoji sorted by
// shortcode. The room is optional; origin (room and event id) is only
// attached when the room is public so private sets are never linked.
func LoadImageSet(ev StateEvent, room Room) ([]CustomEmoji, error) {
	if len(ev.Content) == 0 {
		return []CustomEmoji{}, nil
	}

	var content imageSetContent
	if err := json.Unmarshal(ev.Content, &content); err != nil {
		return nil, fmt.Errorf("failed to decode image set %s: %w", ev.ID, err)
	}
	if len(content.Images) == 0 {
		return []CustomEmoji{}, nil
	}

	var roomID, eventID string
	if room != nil && room.JoinRule() == JoinPublic {
		roomID = room.ID()
		eventID = ev.ID
	}

	shortcodes := make([]string, 0, len(content.Images))
	for code := range content.Images {
		shortcodes = append(shortcodes, code)
	}
	sort.Strings(shortcodes)

	emojis := make([]CustomEmoji, 0, len(shortcodes))
	for _, code := range shortcodes {
		emojis = append(emojis, CustomEmoji{
			Shortcodes: []string{code},
			URL:        content.Images[code].URL,
			RoomID:     roomID,
			EventID:    eventID,
		})
	}
	return emojis, nil
}
