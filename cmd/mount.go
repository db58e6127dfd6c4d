package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/winfsp/cgofuse/fuse"

	treefs "github.com/agentic-research/treeslice/internal/fs"
)

var mountCmd = &cobra.Command{
	Use:   "mount [store] [mountpoint]",
	Short: "Mount a hierarchy as a read-only FUSE filesystem",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mountPoint := ""
		if len(args) == 2 {
			mountPoint = args[1]
		} else if cfg.Mount != nil {
			mountPoint = cfg.Mount.Dir
		}
		if mountPoint == "" {
			return fmt.Errorf("no mountpoint given and none configured")
		}

		root, closeFn, err := openHierarchy(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		host := fuse.NewFileSystemHost(treefs.NewTreeFS(root))

		fmt.Printf("Mounting %s at %s (using fuse-t/cgofuse)...\n", args[0], mountPoint)

		// Use -o ro (Read Only)
		// Use -o uid=N,gid=N to ensure we own the mount (critical for fuse-t/NFS)
		opts := []string{
			"-o", "ro",
			"-o", fmt.Sprintf("uid=%d", os.Getuid()),
			"-o", fmt.Sprintf("gid=%d", os.Getgid()),
		}

		if !host.Mount(mountPoint, opts) {
			return fmt.Errorf("mount failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}
