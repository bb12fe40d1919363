package matrix

import (
	"fmt"

	"github.com/arthur-debert/matrix/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.cfg.String())
			return err
		},
	}

	defaults := &cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaults,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
			return err
		},
	}

	cmd.AddCommand(show, defaults)
	return cmd
}
