// Package preflight provides readiness checks for the filesystem paths,
// detector assets, and external binaries that triagem depends on.
//
// The CLI "triagem status" command renders these results; the analyze
// commands call RunAll and log failures as warnings because every stage
// degrades rather than aborting.
package preflight
