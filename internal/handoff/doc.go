// Package handoff carries a selected track from the search view to the commit view.
//
// A [Slot] holds at most one [models.SelectedTrack]. The [Protocol] drives the
// Empty -> Staged -> Empty cycle on top of a slot and a playlist repository:
// a track is staged with the user's note, reviewed against the current
// playlist names, and then committed to one playlist or cancelled.
//
// Two slots are provided. [ChannelSlot] lives in process and backs the TUI and
// HTTP server. [RedisSlot] keys the record by session so separate CLI
// invocations can stage and commit.
package handoff
