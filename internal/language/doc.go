// Package language defines the Language value type and the catalog of
// languages and translation directions a provider supports, including the
// decoding of catalog payloads.
package language
