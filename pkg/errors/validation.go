package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLen bounds names that end up on command lines and in setup.py.
const maxNameLen = 214

// distributionName matches a PEP 508 distribution name.
var distributionName = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidateDistributionName reports whether name can be published as a Python
// distribution. The project folder name is used verbatim, so a folder such as
// "my project" yields an INVALID_PACKAGE error here.
func ValidateDistributionName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "distribution name is empty")
	case len(name) > maxNameLen:
		return New(ErrCodeInvalidPackage, "distribution name longer than %d characters", maxNameLen)
	case !distributionName.MatchString(name):
		return New(ErrCodeInvalidPackage, "%q is not a valid distribution name", name)
	}
	return nil
}

// ValidateTagName checks that version can be used as a git tag and as part
// of a dist/ glob. It follows the subset of git check-ref-format rules that
// a version string can plausibly break.
func ValidateTagName(version string) error {
	if version == "" {
		return New(ErrCodeInvalidVersion, "empty version")
	}
	if strings.HasPrefix(version, "-") || strings.HasPrefix(version, ".") {
		return New(ErrCodeInvalidVersion, "version %q must not start with %q", version, version[:1])
	}
	if strings.HasSuffix(version, ".") || strings.HasSuffix(version, ".lock") {
		return New(ErrCodeInvalidVersion, "version %q has an invalid suffix", version)
	}
	if strings.Contains(version, "..") || strings.Contains(version, "@{") {
		return New(ErrCodeInvalidVersion, "version %q contains an invalid sequence", version)
	}
	for _, r := range version {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`~^:?*[\/`, r) {
			return New(ErrCodeInvalidVersion, "version %q contains %q", version, r)
		}
	}
	return nil
}

// ValidateIndexURL checks a package index base URL.
func ValidateIndexURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "index URL is empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "index URL %q must use http or https", rawURL)
	}
	return nil
}
