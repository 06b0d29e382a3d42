// Package pkg provides the libraries behind autogen, a housekeeping tool for
// Python projects.
//
// # Overview
//
// autogen generates setup.py, infers install_requires, tracks the version
// file and publishes releases. Every heavy operation is delegated to an
// external tool (git, pipreqs, autopep8, python, twine); the packages here
// collect inputs, build command lines and render files.
//
//  1. [project] - Metadata collection over the project directory and git
//  2. [setupfile] - setup.py rendering with marker-region preservation
//  3. [requires] - Dependency inference via pipreqs
//  4. [release] - Commit, tag, push, build and upload pipeline
//  5. [version] - The version file and level bumps
//
// Supporting packages:
//
//   - [shell] runs external programs behind a mockable Runner
//   - [git] builds and runs git commands
//   - [config] layers defaults, user config, environment and pyproject.toml
//   - [integrations] and [httputil] query the package index with caching
//   - [observability] exposes hooks for command, release and HTTP events
//   - [errors] defines coded errors shared by all packages
//
// # Data Flow
//
//	project directory + git ls-files
//	         ↓
//	    [project] Defaults (pipreqs via [requires])
//	         ↓
//	    [setupfile] Render + Formatter
//	         ↓
//	    setup.py
//
// [project]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/project
// [setupfile]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/setupfile
// [requires]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/requires
// [release]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/release
// [version]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/version
// [shell]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/shell
// [git]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/git
// [config]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/config
// [integrations]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/integrations
// [httputil]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/autogen/pkg/errors
package pkg
