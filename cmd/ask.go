package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the tutor a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.requireAI(); err != nil {
			return err
		}

		answer := svc.tutor.Ask(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}
