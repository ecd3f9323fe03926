// Package models defines the playlist domain entities shared by storage, the track handoff and presentation.
//
// The package contains three groups of types:
//
// 1. Stored collection: what the durable playlist slot holds
//   - [Playlist] : Named, ordered list of songs identified by an immutable id
//   - [Song] : Denormalized copy of a track taken when it was added, plus a user note
//
// 2. Handoff: what the transient selection slot holds
//   - [SelectedTrack] : A single track waiting to be assigned to a playlist
//
// 3. Search results: what the remote search collaborator returns
//   - [Track] : Search hit with its artists and a link to the track page
//   - [Mood] : A mood label mapped to the genre it searches for
//
// JSON field names are part of the stored format and must not change.
package models
