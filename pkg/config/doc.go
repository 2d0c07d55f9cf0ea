/*
Package config loads the migration settings for es6migrate.

	          +------------------+
	          |  .es6migrate.*   |
	          +--------+---------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	+----+----+   +----+----+   +----+----+
	     |             |             |
	     +-------------+-------------+
	                   |
	            +------+------+
	            |  Validate   |
	            +------+------+
	                   |
	             *config.Config

🎯 Purpose:
- Picks the decoder from the file extension
- Rejects unknown keys in every format
- Fills default extensions and parses the batch timeout
- Exposes env.NAME to HCL expressions

🔧 Stage commands:
A nil convert, modules or lint block keeps the default tool. A block with an
empty command skips the stage.

🔍 Example:

	cfg, err := config.LoadConfigOrDefault(ctx, ".es6migrate.yaml")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	fmt.Println(cfg) // .coffee -> .js (concurrency 4)
*/
package config
