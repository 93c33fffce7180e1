package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/sessgrep/internal/render"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and inspect session transcripts",
	}
	cmd.AddCommand(sessionsListCmd())
	cmd.AddCommand(sessionsShowCmd())
	return cmd
}

func sessionsListCmd() *cobra.Command {
	var (
		project string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			infos := newManager(cfg).List(project)
			if jsonOut {
				return render.JSON(os.Stdout, infos)
			}
			render.SessionTable(os.Stdout, infos)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "only list this project")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func sessionsShowCmd() *cobra.Command {
	var (
		maxLength int
		jsonOut   bool
		noColor   bool
	)
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := newManager(cfg).Find(args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return render.JSON(os.Stdout, session)
			}
			if maxLength < 0 {
				maxLength = cfg.Search.MaxLength
			}
			render.Transcript(os.Stdout, session, maxLength, !noColor)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxLength, "max-length", -1, "cap each message at this many bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable styling")
	return cmd
}
