package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvart/padel-scoreboard/internal/auth"
)

// NewTokenCommand creates the command that prints a fresh umpire token.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Generate an umpire token",
		Long: `Generate a random umpire token.

Put it in .env so only the umpire can change the score:
  UMPIRE_TOKEN=<token>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := auth.NewToken()
			if rootOpts.Format == "json" {
				out := &OutputFormatter{Writer: cmd.OutOrStdout()}
				return out.JSON(map[string]string{"token": token})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "UMPIRE_TOKEN=%s\n", token)
			return nil
		},
	}
}
