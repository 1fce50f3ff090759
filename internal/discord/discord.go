package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ctfwatch/ctf-announce/internal/digest"
	"github.com/ctfwatch/ctf-announce/internal/logger"
)

const timeout = 10 * time.Second

// Publisher delivers one announcement message to the destination channel.
type Publisher interface {
	Publish(ctx context.Context, msg digest.Message) error
}

// api is the slice of the Discord REST surface the client uses. It is
// satisfied by *discordgo.Session and faked in tests.
type api interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageCrosspost(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Client posts announcements through the Discord bot API.
type Client struct {
	session   api
	channelID string
}

// NewClient creates a Client authenticated as a bot.
func NewClient(botToken, channelID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID is required")
	}

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	session.Client.Timeout = timeout

	return &Client{
		session:   session,
		channelID: channelID,
	}, nil
}

// Publish posts the message to the configured channel and, when the channel
// is an announcement channel, crossposts it to subscribing servers. Neither
// step is retried, and a crosspost failure does not delete the posted
// message.
func (c *Client) Publish(ctx context.Context, msg digest.Message) error {
	if msg.Content == "" {
		return fmt.Errorf("message content is required")
	}

	channel, err := c.session.Channel(c.channelID, discordgo.WithContext(ctx))
	if err != nil {
		return classify("looking up channel", err)
	}

	posted, err := c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content: msg.Content,
		Embeds:  msg.Embeds,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return classify("posting message", err)
	}

	logger.Debug("posted message", logger.Fields{
		"channel_id": c.channelID,
		"message_id": posted.ID,
	})

	if channel.Type != discordgo.ChannelTypeGuildNews {
		logger.Debug("channel is not an announcement channel, skipping crosspost", logger.Fields{
			"channel_id":   c.channelID,
			"channel_type": int(channel.Type),
		})
		return nil
	}

	if _, err := c.session.ChannelMessageCrosspost(c.channelID, posted.ID, discordgo.WithContext(ctx)); err != nil {
		return classify("crossposting message", err)
	}

	logger.Debug("crossposted message", logger.Fields{
		"channel_id": c.channelID,
		"message_id": posted.ID,
	})

	return nil
}

// classify maps a Discord API failure onto the announcer's error taxonomy:
// 401/403 mean the credential was rejected, everything else is a delivery
// problem.
func classify(op string, err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		code := restErr.Response.StatusCode
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			return &AuthError{Op: op, Err: err}
		}
	}
	return &DeliveryError{Op: op, Err: err}
}
