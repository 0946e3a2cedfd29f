// Package emojipicker renders emoji picker tiles and loads custom emoji
// image sets published in rooms.
package emojipicker

// Emoji is either a UnicodeEmoji or a CustomEmoji
type Emoji interface {
	// Label is the accessible name: the character itself or the first shortcode
	Label() string
	isEmoji()
}

// UnicodeEmoji is a standard emoji character
type UnicodeEmoji struct {
	Unicode    string
	Annotation string
	Shortcodes []string
}

func (e UnicodeEmoji) Label() string {
	return e.Unicode
}

func (UnicodeEmoji) isEmoji() {}

// CustomEmoji is an image published in a room's image set. RoomID and
// EventID are only set when the set came from a public room.
type CustomEmoji struct {
	Shortcodes []string
	Emoticon   string
	URL        string // mxc:// reference
	RoomID     string
	EventID    string
}

func (e CustomEmoji) Label() string {
	if len(e.Shortcodes) == 0 {
		return ""
	}
	return e.Shortcodes[0]
}

func (CustomEmoji) isEmoji() {}
