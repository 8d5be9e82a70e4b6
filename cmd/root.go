package cmd

import (
	"fmt"
	"os"

	"nft-toolkit/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nft-toolkit",
	Short: "NFT Collection Toolkit",
	Long: `NFT Toolkit turns a spreadsheet of items into a Solana NFT collection.
It generates per-item metadata from a template, reports trait rarity and
uploads images and metadata in batches to S3, GCS or an HTTP gateway.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format and debug level give ISO8601 timestamps for CLI output.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
