// Package setupfile renders the setuptools setup.py of a project.
//
// A generated setup.py has three parts: a header holding the computed
// parameters, a user region between two marker lines, and the setup(**params)
// footer. Regeneration replaces header and footer and copies the user region
// verbatim from the previous file:
//
//	params = dict(
//	    name='demo',
//	    ...)
//
//	########## EDIT BELOW THIS LINE ONLY ##########
//	params['entry_points'] = {...}
//	########## EDIT ABOVE THIS LINE ONLY ##########
//
//	setup(**params)
//
// An existing file without both markers is never overwritten; [Generator]
// reports a MISSING_MARKERS error instead.
//
// Output passes through a [Formatter] before it is written. The default
// [CommandFormatter] pipes the source through autopep8 and falls back to
// [BuiltinFormatter] when autopep8 is not installed.
package setupfile
