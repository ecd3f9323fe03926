// Package server provides HTTP routing, middleware and the JSON API over playlists, search and the track handoff.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so "GET /playlists" and
// "POST /playlists" are distinct routes and path wildcards are read with [http.Request.PathValue].
//
// # API
//
// [API] registers these routes:
//
//	GET    /health
//	GET    /playlists
//	POST   /playlists                               {"name": "..."}
//	DELETE /playlists/{id}
//	POST   /playlists/{id}/songs/{index}/move       {"direction": "up"|"down"}
//	DELETE /playlists/{id}/songs/{index}
//	GET    /moods
//	GET    /search?mood=<label>  or  ?genre=<genre>
//	GET    /selection
//	PUT    /selection                               {"track": {...}, "note": "..."}
//	DELETE /selection
//	POST   /selection/commit                        {"playlist": "..."}
//
// Domain errors map to status codes in [StatusFor]: duplicate names and an empty selection are 409,
// unknown playlists are 404, bad input is 400. Search never fails at the HTTP level; the
// outcome is carried in the result's status and message.
package server
