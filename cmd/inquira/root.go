package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira"
	"github.com/mbarros/inquira/internal/logging"
	fileAdapter "github.com/mbarros/inquira/pkg/adapters/file"
	redisAdapter "github.com/mbarros/inquira/pkg/adapters/redis"
)

var rootCmd = &cobra.Command{
	Use:   "inquira",
	Short: "Inquira is a branching questionnaire engine",
	Long:  `Inquira walks branching questionnaire graphs interactively, compiles them into form definitions and evaluates rule triggers over answer sets.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory holding workflow snapshots (default .inquira/workflows)")
	rootCmd.PersistentFlags().String("format", "json", "Snapshot file format: json or yaml")
	rootCmd.PersistentFlags().String("redis", "", "Redis address; when set, snapshots and runs are stored in Redis")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newService builds the service from the persistent storage flags: Redis
// when --redis is set, the filesystem store otherwise.
func newService(cmd *cobra.Command) *inquira.Service {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	opts := []inquira.Option{inquira.WithLogger(logger)}

	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		store := redisAdapter.New(addr, "", 0)
		opts = append(opts,
			inquira.WithSnapshotStore(store),
			inquira.WithRunStore(store.Runs()),
		)
		return inquira.New(opts...)
	}

	dir, _ := cmd.Flags().GetString("dir")
	format, _ := cmd.Flags().GetString("format")
	opts = append(opts, inquira.WithSnapshotStore(fileAdapter.New(dir, fileAdapter.Format(format))))
	return inquira.New(opts...)
}
