// Package tui is the terminal campaign browser. It drives the same list and
// wizard reducers as the web front-end: reducers decide, and each requested
// effect runs as a bubbletea command whose result is fed back as a message.
package tui
