// Package report defines the three report records (visual, speech and the
// fused final report), the score tiers and fixed Portuguese recommendations,
// and writes each report as indented JSON with a plain-text companion.
package report
