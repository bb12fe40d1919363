package matrix

import (
	"fmt"
	"os"

	"github.com/arthur-debert/matrix/internal/version"
	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/arthur-debert/matrix/pkg/config"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// ServiceFactory builds the command service from the resolved configuration.
type ServiceFactory func(cfg *config.Config) (*commands.Service, error)

// app carries global flag values and the lazily built service.
type app struct {
	verbosity  int
	configFile string
	root       string
	format     string

	newService ServiceFactory
	cfg        *config.Config
	service    *commands.Service
	outFormat  ui.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(commands.New)
}

// NewRootCmdWith creates the root command with a custom service factory.
func NewRootCmdWith(factory ServiceFactory) *cobra.Command {
	initTemplateFormatting()

	a := &app{newService: factory}

	rootCmd := &cobra.Command{
		Use:     "matrix",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return commandError(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.root, "root", "", MsgFlagRoot)
	flags.StringVarP(&a.format, "format", "f", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "matrices", Title: "MATRICES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "sources", Title: "SOURCES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newRenameCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newUnlinkCmd(a))
	rootCmd.AddCommand(newReconcileCmd(a))
	rootCmd.AddCommand(newManifestCmd(a))
	rootCmd.AddCommand(newSourceCmd(a))
	rootCmd.AddCommand(newCloneCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup resolves format, configuration and logging before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command) error {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.outFormat = format

	overrides := map[string]interface{}{}
	if a.root != "" {
		overrides["root"] = a.root
	}
	cfg, err := config.Load(config.Options{ConfigFile: a.configFile, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.SetupLogger(a.verbosity, cfg.Log.File)
	log.Debug().Str("command", cmd.Name()).Str("root", cfg.Root).Msg("Command started")
	return nil
}

// svc builds the service on first use.
func (a *app) svc() (*commands.Service, error) {
	if a.service != nil {
		return a.service, nil
	}
	service, err := a.newService(a.cfg)
	if err != nil {
		return nil, err
	}
	a.service = service
	return service, nil
}

// render writes result to the command's stdout in the selected format.
func (a *app) render(cmd *cobra.Command, result interface{}) error {
	renderer, err := ui.NewRenderer(a.outFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

// run is the common RunE body: build the service, call fn, render its
// result.
func (a *app) run(cmd *cobra.Command, fn func(s *commands.Service) (interface{}, error)) error {
	s, err := a.svc()
	if err != nil {
		return err
	}
	result, err := fn(s)
	if err != nil {
		return err
	}
	return a.render(cmd, result)
}

// styled reports whether output goes to a terminal renderer.
func (a *app) styled(cmd *cobra.Command) bool {
	switch a.outFormat {
	case ui.FormatTerminal:
		return true
	case ui.FormatAuto:
		file, ok := cmd.OutOrStdout().(*os.File)
		return ok && ui.DetectFormat(file) == ui.FormatTerminal
	default:
		return false
	}
}

func commandError(msg string) error {
	return errors.New(errors.ErrInvalidInput, msg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionPrompt,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{Title: "MATRIX", Section: "1"}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", MsgFlagManDir)
	return cmd
}
