package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"nft-toolkit/feature/integrity"
	"nft-toolkit/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the collection and its storage",
	Long:  `Checks the upload folder structure, the collection state and the state store schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the upload folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// collectionCheckCmd represents the integrity collection command
var collectionCheckCmd = &cobra.Command{
	Use:   "collection",
	Short: "Check what still blocks the collection from launch",
	Long:  `Lists entries with missing or failed images and unuploaded metadata. With --json the full report is saved to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// storeCheckCmd represents the integrity store command
var storeCheckCmd = &cobra.Command{
	Use:   "store",
	Short: "Check the state store database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, collectionCheckCmd, storeCheckCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
	collectionCheckCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save the detailed report as JSON")
}

func runIntegrityChecks(ctx context.Context, runStructure, runCollection, runStore bool) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	logg := rt.logger

	client, err := rt.storageClient()
	if err != nil {
		return err
	}
	svc := integrity.NewService(client, rt.cfg.Storage.Bucket, checks.RequiredFolders(rt.cfg.Upload), rt.kv, logg)

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case errors.Is(err, integrity.ErrNoBucket):
			logg.Info("Upload backend has no bucket, skipping structure check.", zap.String("backend", rt.cfg.Upload.Backend))
		case err != nil:
			return fmt.Errorf("structure check failed: %w", err)
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runCollection {
		logg.Info("Checking collection...")
		report, err := svc.CheckCollection(ctx)
		if err != nil {
			return fmt.Errorf("collection check failed: %w", err)
		}

		fmt.Println("\n=== Collection Integrity ===")
		fmt.Printf("Entries: %d\n", report.Entries)
		fmt.Printf("Missing Images: %d\n", len(report.MissingImages))
		fmt.Printf("Pending Images: %d\n", len(report.PendingImages))
		fmt.Printf("Failed Images: %d\n", len(report.FailedImages))
		fmt.Printf("Insecure Images: %d\n", len(report.InsecureImages))
		fmt.Printf("Unprocessed: %d\n", len(report.Unprocessed))
		fmt.Printf("Pending Metadata: %d\n", len(report.PendingMetadata))
		fmt.Printf("Template: %t\n", report.TemplateFound)
		fmt.Printf("Ready: %t\n", report.Ready)

		for _, e := range report.TemplateErrors {
			logg.Warn("Template violates schema", zap.String("error", e))
		}
		if len(report.UnknownTokens) > 0 {
			logg.Warn("Template references unknown fields", zap.Strings("tokens", report.UnknownTokens))
		}

		if jsonFlag {
			filename := fmt.Sprintf("integrity_collection_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}
	}

	if runStore {
		logg.Info("Checking state store schema...", zap.String("backend", rt.cfg.Store.Backend))
		report, err := svc.CheckStore()
		switch {
		case errors.Is(err, integrity.ErrNoDatabase):
			logg.Info("State store is not database backed, skipping schema check.")
		case err != nil:
			logg.Error("Store schema check failed", zap.Error(err))
		case report.Status == "ok":
			logg.Info("Store schema matches expected definition.", zap.String("table", report.Table))
		default:
			logg.Warn("Missing Columns", zap.String("table", report.Table), zap.Strings("columns", report.MissingColumns))
		}
	}

	return nil
}
