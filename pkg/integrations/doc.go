// Package integrations holds the shared HTTP client used to query package
// indexes, plus index-specific clients in subpackages.
//
// autogen only talks to an index to answer one question before a release:
// has this version already been published? See [pypi.Client.HasRelease].
package integrations
