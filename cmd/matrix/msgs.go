package matrix

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Assemble sources into symlink workspaces"
	MsgCreateShort      = "Create a matrix and its workspace"
	MsgListShort        = "List matrices"
	MsgShowShort        = "Show one matrix"
	MsgDeleteShort      = "Delete a matrix record"
	MsgRenameShort      = "Rename a matrix; its workspace folder keeps its path"
	MsgSourceShort      = "Manage sources"
	MsgAddLocalShort    = "Register an existing local directory as a source"
	MsgAddRemoteShort   = "Clone a repository and register it as a source"
	MsgSourceListShort  = "List sources"
	MsgSourceRemove     = "Delete a source record"
	MsgLinkShort        = "Add a source to a matrix"
	MsgUnlinkShort      = "Remove a source from a matrix"
	MsgReconcileShort   = "Repair workspaces against the records"
	MsgManifestShort    = "Work with matrix manifests"
	MsgManifestShow     = "Print the manifest of a matrix"
	MsgCloneShort       = "Clone a repository into the shared clone root"
	MsgVersionShort     = "Print version information"
	MsgConfigShort      = "Inspect configuration"
	MsgConfigShowShort  = "Print the effective configuration"
	MsgConfigDefaults   = "Print the built-in default config file"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate man pages"
	MsgCompletionPrompt = "To load completions: source <(matrix completion bash)"

	// Flags
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/matrix/config.toml)"
	MsgFlagRoot    = "Data root holding matrices, repositories and the record store"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml, toml"
	MsgFlagSource  = "Source to include (id, name or id prefix); repeatable"
	MsgFlagName    = "Source name (defaults to the directory or repository name)"
	MsgFlagURL     = "Upstream URL recorded for a local source"
	MsgFlagAll     = "Reconcile every matrix"
	MsgFlagRaw     = "Print the manifest source without rendering"
	MsgFlagManDir  = "Directory to write man pages into"

	// Errors
	MsgErrNoCommand      = "no command specified"
	MsgErrReconcileArgs  = "pass a matrix or --all, not both"
	MsgErrReconcileNoArg = "pass a matrix or --all"
)

// MsgRootLong is the root command help text.
const MsgRootLong = `matrix groups sources, local directories or git clones, into matrices.
Each matrix owns a workspace directory of symlinks to its sources plus a
generated MATRIX.md manifest.

Records live in a YAML store under the data root. Use reconcile to repair
a workspace after links, clones or the manifest went missing.`

// MsgReconcileLong is the reconcile command help text.
const MsgReconcileLong = `Reconcile compares a matrix's workspace with its records and repairs the
difference: it recreates a missing workspace and manifest, relinks
sources, and reclones remote sources whose clone disappeared.

Local sources whose directory is gone are skipped; matrix never recreates
user data. Source ids with no record are reported as orphans.`

// MsgReconcileExample shows typical invocations.
const MsgReconcileExample = `  matrix reconcile work
  matrix reconcile --all --format json`

// MsgUsageTemplate is the cobra usage template.
const MsgUsageTemplate = `{{boldUpper "usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold $group.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
