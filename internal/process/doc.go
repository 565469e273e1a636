// Package process holds platform-specific cleanup for the headless browser
// processes started by PDF export.
package process
