package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe [url] [email]",
	Short: "Subscribe an email to product notifications",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubscribe,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	cmndr, closeConn, err := newCommander(cmd)
	if err != nil {
		return err
	}
	defer closeConn()

	if err := cmndr.SendSubscribeCommand(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("can't send subscribe command: %w", err)
	}

	fmt.Printf("subscribe command sent for %s\n", args[0])
	return nil
}
