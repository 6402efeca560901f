/*
Package config loads a transform run description from a file.

	            +-------------+
	            |   Config    |
	            | (Run Desc)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |  JSON   |  |   HCL   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Describes source and target directories and the replacement mapping
- Keeps replacement order exactly as written in the file
- Lets command line flags and key=value arguments override file values

🔍 Example (YAML):

	source_dir: car-engine-json
	target_dir: project-commodity-json
	replacements:
	  engine: project
	  car: commodity
	  gas: project1

🔍 Example (HCL):

	source_dir = "car-engine-json"
	target_dir = "project-commodity-json"

	replace "engine" { with = "project" }
	replace "car"    { with = "commodity" }
*/
package config
