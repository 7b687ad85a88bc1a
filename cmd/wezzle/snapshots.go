package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wezzle/internal/registry"
	"github.com/vovakirdan/wezzle/internal/storage"
)

var (
	flagSnapshotsMode  string
	flagSnapshotsLimit int
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved games",
	Long: `List the saved games, newest first. Games are saved with Ctrl+S
while playing and resumed with 'wezzle play --resume <id>' or from the menu.

Examples:
  wezzle snapshots
  wezzle snapshots --mode wezzle_hard
  wezzle snapshots delete 12`,
	Args: cobra.NoArgs,
	Run:  runSnapshots,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete saved games",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSnapshotsDelete,
}

func init() {
	snapshotsCmd.Flags().StringVar(&flagSnapshotsMode, "mode", "", "Only list games of this mode")
	snapshotsCmd.Flags().IntVar(&flagSnapshotsLimit, "limit", 20, "Number of saved games to show")
	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
}

func runSnapshots(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	snaps, err := store.ListSnapshots(flagSnapshotsMode, flagSnapshotsLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error listing saved games: %v\n", err)
		os.Exit(1)
	}

	if len(snaps) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-5s  %-14s  %-5s  %-8s  %-5s  %-7s  %s\n", "ID", "Mode", "Level", "Score", "Tiles", "Size", "Saved")
	fmt.Printf("  %-5s  %-14s  %-5s  %-8s  %-5s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "----", "-----")
	for _, s := range snaps {
		fmt.Printf("  %-5d  %-14s  %-5d  %-8d  %-5d  %-7s  %s\n",
			s.ID, registry.Title(s.GameID), s.Level, s.Score, s.Tiles, byteSize(s.Size), s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runSnapshotsDelete(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	failed := false
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid ID %q\n", arg)
			failed = true
			continue
		}
		if err := store.DeleteSnapshot(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting #%d: %v\n", id, err)
			failed = true
			continue
		}
		fmt.Printf("Deleted #%d\n", id)
	}
	if failed {
		store.Close()
		os.Exit(1)
	}
}

func byteSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/1024)
}
