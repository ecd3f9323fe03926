package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Playlist collection errors
	ErrDuplicateName       = fmt.Errorf("a playlist with that name already exists")
	ErrPlaylistNotFound    = fmt.Errorf("playlist not found")
	ErrMalformedStoredData = fmt.Errorf("malformed stored data")

	// Handoff errors
	ErrNoSelection = fmt.Errorf("no track selected")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
