package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/tickwire"
	"github.com/arloliu/tickwire/config"
	"github.com/arloliu/tickwire/internal/logging"
)

// cfg is loaded before every subcommand runs.
var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tickwire",
		Short: "inspect tickwire wire encodings",
		Long: fmt.Sprintf(`tickwire (v%s)

Encode and decode packed whole numbers, delta-precision values and packet
frames from the command line.`, tickwire.Version),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().String("config", "", "path to a tickwire.yaml config file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newPackedCmd())
	root.AddCommand(newDeltaCmd())
	root.AddCommand(newRotationCmd())
	root.AddCommand(newFrameCmd())
	root.AddCommand(newUnframeCmd())
	root.AddCommand(newMetricsCmd())

	return root
}

func setup(cmd *cobra.Command, _ []string) error {
	// Load .env files, ignore errors if files don't exist
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	logger.Debug("configuration loaded", zap.String("compression", cfg.Packet.Compression))

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tickwire",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tickwire v%s\n", tickwire.Version)
		},
	}
}
