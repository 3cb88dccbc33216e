package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Trigger one tracking cycle",
	Args:  cobra.NoArgs,
	RunE:  runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, _ []string) error {
	cmndr, closeConn, err := newCommander(cmd)
	if err != nil {
		return err
	}
	defer closeConn()

	if err := cmndr.SendRunCycleCommand(cmd.Context()); err != nil {
		return fmt.Errorf("can't send cycle command: %w", err)
	}

	fmt.Println("cycle command sent")
	return nil
}
