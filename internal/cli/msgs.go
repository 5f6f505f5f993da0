package cli

// Command descriptions
const (
	MsgRootShort = "Strip the x-user-id header from client-side fetch calls"
	MsgRootLong  = `hdrstrip rewrites one source file, removing the x-user-id header entry
from fetch call sites. Browsers refuse custom headers set from client code,
so the header is expected to be added server side instead.

Four rules run in order over the whole file:
  1. a headers object holding only x-user-id is deleted
  2. an x-user-id entry inside a larger headers object is deleted
  3. headers objects left empty are deleted
  4. a lone Content-Type entry left with a trailing comma is tidied

The file is written back only when something changed.`
	MsgRootExample = `  hdrstrip src/api/items.ts
  hdrstrip --dry-run --diff src/api/items.ts
  hdrstrip --format json src/api/items.ts`

	MsgVersionShort    = "Print version information"
	MsgRulesShort      = "Show the rewrite rules and their patterns"
	MsgGenConfigShort  = "Print the effective configuration as TOML"
	MsgGenConfigLong   = "Print the effective configuration as TOML, or write it to .hdrstrip.toml with -w."
	MsgCompletionShort = "Generate shell completion script"
)

// Flag help
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Report what would change without writing the file"
	MsgFlagDiff    = "Print a unified diff of the change after the status line"
	MsgFlagConfig  = "Config file (default is ./.hdrstrip.toml when present)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagWrite   = "Write the configuration to ./.hdrstrip.toml"
	MsgFlagForce   = "Overwrite an existing ./.hdrstrip.toml"
)

// Messages
const (
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, use --force to overwrite"
)
