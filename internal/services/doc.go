// Package services defines shared utilities consumed by the analysis stages
// and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and the video under
//     analysis for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent stage outcomes (completed, unavailable, failed).
//
// Use these helpers when wiring new stage logic so degraded runs and hard
// failures are reported the same way everywhere.
package services
