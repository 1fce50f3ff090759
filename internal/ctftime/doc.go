// Package ctftime provides a read-only client for the CTFtime events API.
//
// The client fetches upcoming competitions for a bounded time window and
// normalizes each entry: HTML is stripped from descriptions, relative logo
// URLs are resolved against ctftime.org, and missing fields get the same
// placeholder values the CTFtime site itself displays. A single malformed
// entry is skipped with a warning rather than failing the whole fetch.
package ctftime
