// Package announce wires the feed client, formatter, and publisher into
// the single operation this system exposes: fetch upcoming events for the
// configured window, format them, and post the announcement. The pipeline
// runs strictly in sequence and the first failure aborts the rest.
package announce
