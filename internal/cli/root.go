package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kvload",
	Short: "Load serialized records into a key-value store",
	Long: `kvload reads a file of serialized records (MessagePack by default) and writes
each record into a key-value store under the value of its "id" field.

Records are written one at a time, in file order. The first record that cannot
be decoded, keyed or written stops the load; everything before it stays written.

Exit Codes:
  0  - Success (every record loaded)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration, store URL or format
  11 - Store connection failed
  12 - Input file missing or unreadable
  13 - Input is not a valid record stream
  14 - Record without a usable key
  15 - Store rejected a write`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
