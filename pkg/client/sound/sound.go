// Package sound keeps the notification and call sounds pointed at the
// user's chosen sound pack.
package sound

import (
	"path/filepath"
)

// Name identifies one of the client's sounds
type Name string

const (
	Message  Name = "message"
	Ring     Name = "ring"
	Ringback Name = "ringback"
	CallEnd  Name = "callend"
	Busy     Name = "busy"
)

// Names lists every sound in load order
var Names = []Name{Message, Ring, Ringback, CallEnd, Busy}

// looping sounds repeat until stopped
var looping = map[Name]bool{
	Ring:     true,
	Ringback: true,
}

// Source is one candidate file for a sound, tried in order
type Source struct {
	Path     string
	MIMEType string
}

// Audio is a sound and its candidate sources
type Audio struct {
	Name    Name
	Loop    bool
	Sources []Source
}

// Sources returns the candidate files for name in pack: ogg first, then mp3
func Sources(mediaDir, pack string, name Name) []Source {
	base := filepath.Join(mediaDir, pack, string(name))
	return []Source{
		{Path: base + ".ogg", MIMEType: "audio/ogg"},
		{Path: base + ".mp3", MIMEType: "audio/mpeg"},
	}
}

func buildAudios(mediaDir, pack string) map[Name]Audio {
	audios := make(map[Name]Audio, len(Names))
	for _, n := range Names {
		audios[n] = Audio{
			Name:    n,
			Loop:    looping[n],
			Sources: Sources(mediaDir, pack, n),
		}
	}
	return audios
}
