// Package api exposes the directions service over HTTP. Handlers translate
// requests into validation.RawRequest values, call the directions service
// and render the result in the envelope the client negotiated through the
// Accept header. Every failure is written as a single error body carrying
// the stable error code of its category.
package api
