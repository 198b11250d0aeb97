// Package services contains the catalog client layer.
//
// [Catalog] is the interface the discovery pipeline is written against:
// artist search, paginated album listing, album detail retrieval, and
// destination playlist mutation. [SpotifyService] is the production
// implementation, a thin authenticated HTTP client over the Spotify Web API
// with a client-side rate limiter.
//
// [Pager] unifies the Web API's two pagination termination signals (short
// page and null next-cursor) behind a single Next contract so traversal
// code is written once.
package services
