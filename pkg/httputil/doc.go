// Package httputil provides the small amount of HTTP plumbing autogen needs to
// talk to a package index.
//
//   - [Cache]: file-based response cache with a TTL, so repeated
//     "has this version been released?" checks do not hit the index
//   - [Retry]: retry with exponential backoff for transient failures
//
// Cache entries live in ~/.cache/autogen/ unless another directory is given.
// Keys are hashed, so any string is a valid key; use [Cache.Namespace] to keep
// different indexes apart:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	pypi := cache.Namespace("pypi:")
//
// Only errors wrapped in [RetryableError] are retried:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
