package discord

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/ctfwatch/ctf-announce/internal/digest"
)

// fakeSession records calls and returns scripted results.
type fakeSession struct {
	channelType  discordgo.ChannelType
	channelErr   error
	sendErr      error
	crosspostErr error

	sentMessages []*discordgo.MessageSend
	crossposted  []string
}

func (f *fakeSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	return &discordgo.Channel{ID: channelID, Type: f.channelType}, nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sentMessages = append(f.sentMessages, data)
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessageCrosspost(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.crosspostErr != nil {
		return nil, f.crosspostErr
	}
	f.crossposted = append(f.crossposted, messageID)
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

func restError(status int) *discordgo.RESTError {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
	}
}

func testMessage() digest.Message {
	return digest.Message{
		Content: "CTFs during the upcoming 7 days:",
		Embeds: []*discordgo.MessageEmbed{
			{Title: "FooCTF"},
		},
	}
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		botToken  string
		channelID string
		wantError bool
	}{
		{
			name:      "valid parameters",
			botToken:  "test-token",
			channelID: "12345",
			wantError: false,
		},
		{
			name:      "empty bot token",
			botToken:  "",
			channelID: "12345",
			wantError: true,
		},
		{
			name:      "empty channel ID",
			botToken:  "test-token",
			channelID: "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.botToken, tt.channelID)
			if tt.wantError {
				if err == nil {
					t.Error("NewClient() expected error, got nil")
				}
				if client != nil {
					t.Error("NewClient() should return nil client on error")
				}
			} else {
				if err != nil {
					t.Errorf("NewClient() unexpected error: %v", err)
				}
				if client == nil {
					t.Error("NewClient() returned nil client")
				}
			}
		})
	}
}

func TestPublish_AnnouncementChannel(t *testing.T) {
	session := &fakeSession{channelType: discordgo.ChannelTypeGuildNews}
	client := &Client{session: session, channelID: "12345"}

	if err := client.Publish(context.Background(), testMessage()); err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}

	if len(session.sentMessages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(session.sentMessages))
	}
	if session.sentMessages[0].Content != "CTFs during the upcoming 7 days:" {
		t.Errorf("sent content = %q", session.sentMessages[0].Content)
	}
	if len(session.crossposted) != 1 || session.crossposted[0] != "msg-1" {
		t.Errorf("crossposted = %v, want [msg-1]", session.crossposted)
	}
}

func TestPublish_TextChannelSkipsCrosspost(t *testing.T) {
	session := &fakeSession{channelType: discordgo.ChannelTypeGuildText}
	client := &Client{session: session, channelID: "12345"}

	if err := client.Publish(context.Background(), testMessage()); err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}

	if len(session.sentMessages) != 1 {
		t.Errorf("sent %d messages, want 1", len(session.sentMessages))
	}
	if len(session.crossposted) != 0 {
		t.Errorf("crossposted = %v, want none for a text channel", session.crossposted)
	}
}

func TestPublish_EmptyMessage(t *testing.T) {
	session := &fakeSession{channelType: discordgo.ChannelTypeGuildNews}
	client := &Client{session: session, channelID: "12345"}

	if err := client.Publish(context.Background(), digest.Message{}); err == nil {
		t.Error("Publish() expected error for empty message, got nil")
	}
	if len(session.sentMessages) != 0 {
		t.Errorf("sent %d messages, want 0", len(session.sentMessages))
	}
}

func TestPublish_AuthError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{
				channelType: discordgo.ChannelTypeGuildNews,
				sendErr:     restError(tt.status),
			}
			client := &Client{session: session, channelID: "12345"}

			err := client.Publish(context.Background(), testMessage())

			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("Publish() error = %v, want AuthError", err)
			}
		})
	}
}

func TestPublish_DeliveryError(t *testing.T) {
	session := &fakeSession{
		channelType: discordgo.ChannelTypeGuildNews,
		sendErr:     restError(http.StatusBadRequest),
	}
	client := &Client{session: session, channelID: "12345"}

	err := client.Publish(context.Background(), testMessage())

	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("Publish() error = %v, want DeliveryError", err)
	}
}

func TestPublish_CrosspostFailureSurfaces(t *testing.T) {
	session := &fakeSession{
		channelType:  discordgo.ChannelTypeGuildNews,
		crosspostErr: restError(http.StatusBadRequest),
	}
	client := &Client{session: session, channelID: "12345"}

	err := client.Publish(context.Background(), testMessage())

	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("Publish() error = %v, want DeliveryError", err)
	}
	// The posted message is not deleted on crosspost failure.
	if len(session.sentMessages) != 1 {
		t.Errorf("sent %d messages, want 1", len(session.sentMessages))
	}
}
