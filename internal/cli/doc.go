// Package cli implements the command-line interface for seminar-events.
//
// The cli package provides the Cobra-based CLI that drives the full
// pipeline: fetch the ICS feed, parse and map events per the transform
// config, run the enabled enrichment passes, and write the resulting
// records as JSON. Flags fall back to environment variables so the tool
// runs unattended in schedulers.
package cli
