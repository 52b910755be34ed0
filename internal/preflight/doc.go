// Package preflight provides readiness checks for the external tools and
// filesystem paths mkvnorm depends on.
//
// These checks run in two contexts:
//   - `mkvnorm run` calls RunAll before touching any file. If a required
//     check fails, the batch does not start.
//   - `mkvnorm check` renders every result as a status table.
package preflight
