// Package project collects the packaging metadata of a Python project by
// inspecting its directory and asking git.
//
// A [Project] is a façade over one working directory. It snapshots the list
// of git-tracked files when created; every other field is computed on demand
// from the filesystem:
//
//	p, err := project.New(ctx, dir, project.Options{Config: cfg, Runner: runner})
//	params, err := p.Defaults(ctx)
//
// [Project.Defaults] returns the ordered keyword arguments for setuptools'
// setup(), which package setupfile renders into setup.py.
//
// Missing optional inputs are not errors: without a readme the description
// falls back to the project name (with a warning), without a version file the
// version is 0.0.0, and an unreadable remote gives an empty url.
package project
