// Package cli implements the command-line interface for ctf-announce.
//
// The cli package provides the Cobra-based CLI with two modes: a one-shot
// announce run (with dry-run support for previewing the message) and a
// serve mode that exposes the run as an HTTP trigger endpoint for a
// hosted scheduler.
package cli
