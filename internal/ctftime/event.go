package ctftime

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// BaseURL is the CTFtime site root, used to resolve relative logo URLs.
	BaseURL = "https://ctftime.org"

	// DefaultLogo is shown when an event has no logo of its own.
	DefaultLogo = "https://pbs.twimg.com/profile_images/2189766987/ctftime-logo-avatar_400x400.png"

	maxDescriptionLength = 2048
)

// Event represents one upcoming competition from the CTFtime events API.
type Event struct {
	ID            int       `json:"id"`
	CTFID         int       `json:"ctf_id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	CTFTimeURL    string    `json:"ctftime_url"`
	Start         time.Time `json:"start"`
	Finish        time.Time `json:"finish"`
	Format        string    `json:"format"`
	FormatID      int       `json:"format_id"`
	Logo          string    `json:"logo"`
	Description   string    `json:"description"`
	Restrictions  string    `json:"restrictions"`
	Weight        float64   `json:"weight"`
	OnSite        bool      `json:"onsite"`
	Location      string    `json:"location"`
	Participants  int       `json:"participants"`
	LiveFeed      string    `json:"live_feed"`
	PublicVotable bool      `json:"public_votable"`
	Duration      Duration  `json:"duration"`
	Organizers    []Team    `json:"organizers"`
}

// Team represents an organizing team in the feed.
type Team struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Academic bool     `json:"academic"`
	Aliases  []string `json:"aliases"`
}

// Duration is the event duration as reported by the feed.
type Duration struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// String renders a duration like "2d 5h", "3d", or "48h".
func (d Duration) String() string {
	switch {
	case d.Days > 0 && d.Hours > 0:
		return fmt.Sprintf("%dd %dh", d.Days, d.Hours)
	case d.Days > 0:
		return fmt.Sprintf("%dd", d.Days)
	default:
		return fmt.Sprintf("%dh", d.Hours)
	}
}

// DetailURL returns the event's own page if it has one, falling back to
// its CTFtime page.
func (e *Event) DetailURL() string {
	if e.URL != "" {
		return e.URL
	}
	return e.CTFTimeURL
}

var stripPolicy = bluemonday.StrictPolicy()

// normalize fills placeholder values for missing fields, resolves the logo
// URL, and strips HTML from the description. Mirrors what the CTFtime site
// displays for sparse entries.
func (e *Event) normalize() {
	if e.Title == "" {
		e.Title = "Unnamed"
	}
	if e.Format == "" {
		e.Format = "Unknown"
	}
	if e.Restrictions == "" {
		e.Restrictions = "Unknown"
	}

	if e.OnSite {
		if e.Location == "" {
			e.Location = "Unknown"
		}
	} else {
		e.Location = "online"
	}

	e.Logo = resolveLogoURL(e.Logo)
	e.Description = sanitizeDescription(e.Description)
}

// resolveLogoURL handles the feed's relative logo paths and empty logos.
func resolveLogoURL(logo string) string {
	switch {
	case logo == "":
		return DefaultLogo
	case strings.HasPrefix(logo, "/"):
		return BaseURL + logo
	default:
		return logo
	}
}

// sanitizeDescription strips all HTML tags and caps the length so one
// wordy event cannot dominate the announcement. The cap counts runes so
// a multi-byte description is never cut mid-character.
func sanitizeDescription(s string) string {
	s = strings.TrimSpace(stripPolicy.Sanitize(s))
	if s == "" {
		return "No description"
	}
	if utf8.RuneCountInString(s) > maxDescriptionLength {
		runes := []rune(s)
		s = string(runes[:maxDescriptionLength-3]) + "..."
	}
	return s
}
