// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through the mood-to-playlist flow:
//  1. [MoodView] : Pick one of the mood buttons
//  2. [ResultsView] : Browse tracks found for the mood's genre
//  3. [NoteView] : Attach an optional note to the chosen track
//  4. [CommitView] : Pick the playlist to add it to, or cancel
//  5. [PlaylistsView] / [SongsView] : Manage playlists and reorder or remove songs
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Repository and search calls run as [tea.Cmd]s so the view never blocks.
//
// Deleting a playlist or removing a song asks for y/n confirmation first.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
