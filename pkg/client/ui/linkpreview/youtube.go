package linkpreview

import "regexp"

// YouTubeForm names the URL shape a YouTube link was recognised by
type YouTubeForm int

const (
	FormNone YouTubeForm = iota
	FormWatch
	FormShort
	FormPath // shorts, live and embed paths
)

// YouTubeMatch is the result of classifying a link. ID is only set when
// Matched is true.
type YouTubeMatch struct {
	Matched bool
	ID      string
	Form    YouTubeForm
}

type youtubeClassifier struct {
	form    YouTubeForm
	pattern *regexp.Regexp
}

// Evaluated in order, first match wins. Each pattern captures the video id
// in its first group.
var youtubeClassifiers = []youtubeClassifier{
	{
		form:    FormWatch,
		pattern: regexp.MustCompile(`^https?://(?:m\.|www\.)?youtube(?:-nocookie)?\.com/watch\?v=([\w-]+)(\S+)?$`),
	},
	{
		form:    FormShort,
		pattern: regexp.MustCompile(`^https?://youtu\.be/([\w-]+)(\S+)?$`),
	},
	{
		form:    FormPath,
		pattern: regexp.MustCompile(`^https?://(?:m\.|www\.)?youtube(?:-nocookie)?\.com/(?:shorts|live|embed)/([\w-]+)(\S+)?$`),
	},
}

// MatchYouTube classifies link as a YouTube video URL
func MatchYouTube(link string) YouTubeMatch {
	for _, c := range youtubeClassifiers {
		if m := c.pattern.FindStringSubmatch(link); m != nil {
			return YouTubeMatch{Matched: true, ID: m[1], Form: c.form}
		}
	}
	return YouTubeMatch{}
}

// NoCookieEmbedURL is the privacy-enhanced player URL for a video id
func NoCookieEmbedURL(id string) string {
	return "https://www.youtube-nocookie.com/embed/" + id
}
