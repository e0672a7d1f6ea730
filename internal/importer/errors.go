package importer

import "errors"

// ErrUpstreamFetch is returned when the external source cannot be read.
// No writes have happened when it is returned.
var ErrUpstreamFetch = errors.New("failed to fetch external tasks")
