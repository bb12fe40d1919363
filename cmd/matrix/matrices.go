package matrix

import (
	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var sources []string
	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   MsgCreateShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.CreateMatrix(commands.CreateMatrixOptions{Name: args[0], SourceRefs: sources})
			})
		},
	}
	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, MsgFlagSource)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "matrices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.ListMatrices()
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <matrix>",
		Short:   MsgShowShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.GetMatrix(args[0])
			})
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <matrix> <new-name>",
		Aliases: []string{"mv"},
		Short:   MsgRenameShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.RenameMatrix(args[0], args[1])
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <matrix>",
		Aliases: []string{"rm"},
		Short:   MsgDeleteShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.DeleteMatrix(args[0])
			})
		},
	}
}

func newLinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "link <matrix> <source>",
		Short:   MsgLinkShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.Link(args[0], args[1])
			})
		},
	}
}

func newUnlinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "unlink <matrix> <source>",
		Short:   MsgUnlinkShort,
		GroupID: "matrices",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.Unlink(args[0], args[1])
			})
		},
	}
}

func newReconcileCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "reconcile [matrix]",
		Short:   MsgReconcileShort,
		Long:    MsgReconcileLong,
		Example: MsgReconcileExample,
		GroupID: "matrices",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return commandError(MsgErrReconcileArgs)
			case !all && len(args) == 0:
				return commandError(MsgErrReconcileNoArg)
			}
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				if all {
					return s.ReconcileAll(cmd.Context())
				}
				return s.Reconcile(cmd.Context(), args[0])
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}
