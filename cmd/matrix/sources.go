package matrix

import (
	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/arthur-debert/matrix/pkg/ui"
	"github.com/spf13/cobra"
)

func newSourceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "source",
		Aliases: []string{"src"},
		Short:   MsgSourceShort,
		GroupID: "sources",
	}

	var local commands.AddLocalOptions
	addLocal := &cobra.Command{
		Use:   "add-local <path>",
		Short: MsgAddLocalShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local.Path = args[0]
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.AddLocalSource(local)
			})
		},
	}
	addLocal.Flags().StringVarP(&local.Name, "name", "n", "", MsgFlagName)
	addLocal.Flags().StringVar(&local.URL, "url", "", MsgFlagURL)

	var remote commands.AddRemoteOptions
	addRemote := &cobra.Command{
		Use:   "add-remote <url>",
		Short: MsgAddRemoteShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote.URL = args[0]
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.AddRemoteSource(cmd.Context(), remote)
			})
		},
	}
	addRemote.Flags().StringVarP(&remote.Name, "name", "n", "", MsgFlagName)

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgSourceListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.ListSources()
			})
		},
	}

	remove := &cobra.Command{
		Use:     "remove <source>",
		Aliases: []string{"rm"},
		Short:   MsgSourceRemove,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.RemoveSource(args[0])
			})
		},
	}

	cmd.AddCommand(addLocal, addRemote, list, remove)
	return cmd
}

func newCloneCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:     "clone <url>",
		Short:   MsgCloneShort,
		GroupID: "sources",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *commands.Service) (interface{}, error) {
				return s.Clone(cmd.Context(), args[0], name)
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	return cmd
}

func newManifestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manifest",
		Short:   MsgManifestShort,
		GroupID: "matrices",
	}

	var raw bool
	show := &cobra.Command{
		Use:   "show <matrix>",
		Short: MsgManifestShow,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc()
			if err != nil {
				return err
			}
			result, err := s.ShowManifest(args[0])
			if err != nil {
				return err
			}
			if raw || !a.styled(cmd) {
				return a.render(cmd, result)
			}
			renderer, err := ui.NewRenderer(ui.FormatText, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return renderer.RenderMessage(ui.RenderMarkdown(result.Content, 0))
		},
	}
	show.Flags().BoolVar(&raw, "raw", false, MsgFlagRaw)

	cmd.AddCommand(show)
	return cmd
}
