// Package pypi queries the JSON API of the Python Package Index.
//
// autogen uses it as a release pre-flight: before tagging and uploading, it
// asks whether the version in the project's version file is already on the
// index, since an index refuses to accept the same file twice.
//
//	client := pypi.NewClient(cache, "https://pypi.org/pypi")
//	done, err := client.HasRelease(ctx, "autogen", "1.0.14")
//
// Responses are cached for the cache TTL; pass refresh=true to
// [Client.FetchProject] to bypass the cache. Project names are normalized
// following PEP 503.
package pypi
