// Package discord delivers announcement messages to a Discord channel.
//
// Publishing is a two-step contract: post the message, then crosspost it so
// servers following the announcement channel receive a copy. Both steps are
// authenticated with a bot token. A dry-run publisher prints the message
// instead, for local testing.
package discord
