/*
Package operation implements the copy and rewrite pass over a directory tree.

	+-------------+
	|  CopyTree   |
	| (src->dst)  |
	+------+------+
	       |
	+------+------+
	| rules.Build |
	|  (mapping)  |
	+------+------+
	       |
	+------+------+
	|    walk     |
	| (rename and |
	|   rewrite)  |
	+-------------+

🔄 Flow:
1. Replace the target directory with a copy of the source
2. Build the substitution rules from the mapping
3. Walk the copy top-down; at each level rename subdirectories,
   then rename files and rewrite selected file contents, then descend

Every change is appended to the Report and passed to the Observer, if any.
Nothing is rolled back when a step fails.

🔍 Example:

	report, err := operation.Transform(ctx, operation.Options{
		SourceDir:    "car-engine-json",
		TargetDir:    "project-commodity-json",
		Replacements: m,
	})
*/
package operation
