// Package services talks to the remote music catalogue and maps moods to genres.
//
// # Search
//
// [SpotifyService] implements [Searcher] against the Spotify Web API search
// endpoint. It authenticates with a user-supplied bearer token through an
// [oauth2] static token source and paces requests with a [rate.Limiter].
//
// A search never returns an error. Every outcome is a [SearchResult] whose
// [SearchStatus] tells the caller what happened:
//   - [StatusOK] : tracks decoded (possibly none)
//   - [StatusNoToken] : no access token configured; no request is made
//   - [StatusUnauthorized] : the service answered 401
//   - [StatusRequestFailed] : any other non-2xx answer
//   - [StatusNetworkError] : transport or decode failure
//
// # Moods
//
// [Moods] lists the fixed mood buttons and the genre each one searches.
package services
