// Package language normalizes the configured speech language into the forms
// the transcriber (ISO 639-1) and the text scorer (a BCP 47 tag for case
// folding) need.
package language
