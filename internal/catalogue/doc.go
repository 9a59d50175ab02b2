// Package catalogue provides an HTTP client for the lost-and-found Catalogue
// Service.
//
// # Overview
//
// The Catalogue Service stores uploaded images, runs similarity search, lists
// catalogued entries and deletes them. This package only consumes its
// request/response contract:
//
//   - POST /api/search: multipart "file" → best match or null data
//   - POST /api/upload: multipart "file" + "info" → success flag
//   - GET /api/images: full entry listing
//   - DELETE /api/images/{id}: remove one entry
//
// # Outcomes
//
// Every response is a JSON envelope with success, message, error and data
// fields. Whether a call failed is decided in exactly one place (settle):
// a transport error, a non-2xx status, or success:false all become a
// *Failure. Its Message is the server's error text, else its message text,
// else a per-operation fallback. Use Reason to obtain banner text from any
// error.
//
// A search that succeeds with null data (or data without an image) is not a
// failure: Search returns (nil, nil).
//
// # Asset URLs
//
// The service stores an asset as <uuid>.<ext>, where ext is the lowercased
// last dot-segment of the original filename. AssetURL reproduces that name
// exactly; the coupling is deliberate.
//
// # Request IDs
//
// Callers may tag a context with WithRequestID; the id is sent as
// X-Request-ID so workflow submissions can be correlated in logs.
//
// # Timeouts
//
// NewClient takes a timeout; zero leaves requests bounded only by the
// service and the caller's context.
package catalogue
