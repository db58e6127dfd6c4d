package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/nfsmount"
)

var (
	serveMountDir string
	servePort     int
)

var serveCmd = &cobra.Command{
	Use:   "serve [store]",
	Short: "Serve a hierarchy over NFS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root, closeFn, err := openHierarchy(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		port := servePort
		if port == 0 && cfg.Mount != nil {
			port = cfg.Mount.Port
		}
		srv, err := nfsmount.NewServerOnPort(nfsmount.NewHierFS(root), port)
		if err != nil {
			return err
		}
		defer func() { _ = srv.Close() }()

		fmt.Printf("Serving %s on NFS port %d\n", args[0], srv.Port())

		mountDir := serveMountDir
		if mountDir == "" && cfg.Mount != nil && cfg.Mount.NFS {
			mountDir = cfg.Mount.Dir
		}
		if mountDir != "" {
			if err := nfsmount.Mount(srv.Port(), mountDir); err != nil {
				return fmt.Errorf("mounting at %s: %w", mountDir, err)
			}
			fmt.Printf("Mounted at %s\n", mountDir)
			defer func() {
				if err := nfsmount.Unmount(mountDir); err != nil {
					fmt.Fprintf(os.Stderr, "unmount %s: %v\n", mountDir, err)
				}
			}()
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		fmt.Println("Shutting down.")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveMountDir, "mount", "", "Mount the served hierarchy at this directory")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "NFS server port (0 = ephemeral)")
	rootCmd.AddCommand(serveCmd)
}
