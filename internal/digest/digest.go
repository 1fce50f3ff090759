package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ctfwatch/ctf-announce/internal/ctftime"
)

// Discord payload ceilings. A message exceeding any of these is rejected
// by the API, so the formatter truncates instead.
const (
	MaxContentLength = 2000
	MaxEmbeds        = 10
	MaxEmbedTotal    = 6000
)

// embedColor matches the CTFtime brand red.
const embedColor = 0xFF0035

// Message is the single payload posted to the channel: a plain content
// summary plus one embed per listed event.
type Message struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

// Format renders events (already sorted by start time) into one Message.
// An empty input produces a fixed "no events" message so there is always
// something to post. When the full rendering would exceed a ceiling,
// trailing events are dropped and a final line notes how many were cut.
func Format(events []ctftime.Event, w ctftime.Window) Message {
	if len(events) == 0 {
		return Message{
			Content: fmt.Sprintf("No CTFs scheduled in the next %d days.", w.Days()),
		}
	}

	header := fmt.Sprintf("CTFs during the upcoming %d days:", w.Days())

	lines := make([]string, len(events))
	embeds := make([]*discordgo.MessageEmbed, len(events))
	embedLens := make([]int, len(events))
	for i := range events {
		lines[i] = formatLine(&events[i])
		embeds[i] = formatEmbed(&events[i])
		embedLens[i] = embedLength(embeds[i])
	}

	// Largest prefix of events that fits every ceiling. k can reach 0,
	// leaving only the header and the truncation note.
	for k := len(events); k >= 0; k-- {
		content := buildContent(header, lines[:k], len(events)-k)
		if len(content) > MaxContentLength {
			continue
		}
		if k > MaxEmbeds {
			continue
		}
		total := 0
		for _, l := range embedLens[:k] {
			total += l
		}
		if total > MaxEmbedTotal {
			continue
		}
		return Message{Content: content, Embeds: embeds[:k]}
	}

	// Unreachable: k=0 content is a short fixed string.
	return Message{Content: header}
}

// buildContent joins the header, one line per kept event, and a note about
// dropped ones.
func buildContent(header string, lines []string, dropped int) string {
	var b strings.Builder
	b.WriteString(header)
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if dropped > 0 {
		b.WriteString(fmt.Sprintf("\n...and %d more on ctftime.org", dropped))
	}
	return b.String()
}

// linkTextEscaper neutralizes the characters a feed-supplied title could
// use to close the markdown link early and inject its own URL.
var linkTextEscaper = strings.NewReplacer(
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
)

// formatLine renders one event as a list entry: linked title, start time
// as a Discord timestamp tag, and the format tag.
func formatLine(evt *ctftime.Event) string {
	title := linkTextEscaper.Replace(evt.Title)
	line := fmt.Sprintf("- [%s](%s) starts <t:%d:F>", title, evt.DetailURL(), evt.Start.Unix())
	if evt.Format != "" && evt.Format != "Unknown" {
		line += fmt.Sprintf(" (%s)", evt.Format)
	}
	return line
}

// formatEmbed renders the detail card for one event.
func formatEmbed(evt *ctftime.Event) *discordgo.MessageEmbed {
	footer := fmt.Sprintf("⏳ %s | 📌 %s ⛳ %s | 👮 %s 🏋️ %.2f",
		evt.Duration, evt.Location, evt.Format, evt.Restrictions, evt.Weight)

	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       evt.Title,
		URL:         evt.DetailURL(),
		Description: evt.Description,
		Color:       embedColor,
		Timestamp:   evt.Start.Format(time.RFC3339),
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: evt.Logo,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
	}
}

// embedLength approximates Discord's per-message embed character count,
// which sums titles, descriptions, and footers across all embeds.
func embedLength(e *discordgo.MessageEmbed) int {
	n := len(e.Title) + len(e.Description)
	if e.Footer != nil {
		n += len(e.Footer.Text)
	}
	return n
}
