// Package hexview provides a Bubble Tea hex viewer/editor component backed by
// a bytestore.Store.
//
// Navigation is handled by a viewport.Controller and never touches the file.
// The visible window is loaded by a tea.Cmd after each navigation step, and
// commits, reloads and searches run the same way, so input handling never
// blocks on disk. Highlighting is composed by a highlight.Pipeline over the
// loaded window.
package hexview
