package discord

import (
	"context"
	"fmt"

	"github.com/ctfwatch/ctf-announce/internal/digest"
)

// DryRunPublisher prints what would be posted without talking to Discord.
type DryRunPublisher struct{}

// NewDryRunPublisher creates a new dry-run publisher.
func NewDryRunPublisher() *DryRunPublisher {
	return &DryRunPublisher{}
}

// Publish prints the message that would be posted.
func (p *DryRunPublisher) Publish(ctx context.Context, msg digest.Message) error {
	fmt.Println("--- Message ---")
	fmt.Println(msg.Content)
	fmt.Printf("\n(Length: %d characters, %d embeds)\n", len(msg.Content), len(msg.Embeds))
	for i, embed := range msg.Embeds {
		fmt.Printf("--- Embed %d/%d ---\n", i+1, len(msg.Embeds))
		fmt.Println(embed.Title)
		if embed.Footer != nil {
			fmt.Println(embed.Footer.Text)
		}
	}
	return nil
}
