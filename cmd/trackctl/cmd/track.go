package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track [url]",
	Short: "Start tracking a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cmndr, closeConn, err := newCommander(cmd)
	if err != nil {
		return err
	}
	defer closeConn()

	if err := cmndr.SendTrackCommand(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("can't send track command: %w", err)
	}

	fmt.Printf("track command sent for %s\n", args[0])
	return nil
}
