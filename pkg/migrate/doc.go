/*
Package migrate drives batches of legacy source files through the migration chain.

	+-----------+     +----------+     +----------+     +--------+     +----------+
	|   Read    | --> | Convert  | --> | Rewrite  | --> |  Lint  | --> | Finalize |
	|           |     |          |     | Modules  |     |        |     | (w + rm) |
	+-----------+     +----------+     +----------+     +--------+     +----------+

🎯 Purpose:
- Runs one Pipeline per input file, all of them concurrently
- Collects exactly one FileOutcome per file into a single BatchOutcome
- Keeps one file's failure from touching any other file

🔄 Flow:
1. RunBatch validates the request (no files, duplicates or bad extensions are ErrConfig)
2. Every file gets a pipeline; stages run strictly in order for that file
3. Pipelines hand their outcome to the batch over a channel
4. The batch goroutine appends errors and counts outcomes, and resolves when the count reaches N

⚡ Failure policy:
- A stage failure stops that file before Finalize, so nothing is written or removed
- A failed write leaves the original in place
- A failed delete after a good write is a warning, the file still counts as completed
- An expired batch waits for running pipelines, then marks files stopped by the
  deadline as failed in the Timeout stage

🔍 Example:

	m, err := migrate.New(migrate.Options{
		Reader:  fm,
		Writer:  fm,
		Deleter: fm,
		Stages:  stages,
	})
	outcome, err := m.RunBatch(ctx, files, migrate.BatchConfig{SourceExt: ".coffee", TargetExt: ".js"})
*/
package migrate
