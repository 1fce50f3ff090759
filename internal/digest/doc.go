// Package digest renders a batch of upcoming events into a single Discord
// message. Formatting is pure: no I/O, deterministic for a given input,
// and the result always respects Discord's payload ceilings.
package digest
