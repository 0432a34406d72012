// Package history keeps a SQLite log of completed analyses so earlier runs
// can be listed and inspected from the CLI without reopening report files.
package history
