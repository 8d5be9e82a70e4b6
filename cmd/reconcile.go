package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"nft-toolkit/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile uploads command
	purgeOrphans  bool
	resetMissing  bool
	dryRunUploads bool
	yesConfirm    bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile recorded uploads with the storage bucket",
	Long: `Reconcile uploads to detect recorded objects missing from the bucket and
bucket objects the collection no longer references.`,
}

// uploadsReconcileCmd performs upload reconciliation with optional reset/purge.
var uploadsReconcileCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Reconcile uploaded images and metadata (report + optionally reset/purge)",
	Long: `Reconcile uploaded images, metadata and the collection NFT against the bucket.

Reports uploads missing from the bucket and orphaned objects.
Optionally reset missing uploads so the next upload run sends them again,
or purge (delete) orphaned objects.

Examples:
  # Report only
  reconcile uploads

  # Reset missing uploads (with interactive confirmation)
  reconcile uploads --reset

  # Purge orphans with auto-confirm (non-interactive)
  reconcile uploads --purge --yes`,
	RunE: runUploadsReconcile,
}

func init() {
	reconcileCmd.AddCommand(uploadsReconcileCmd)

	uploadsReconcileCmd.Flags().BoolVar(&purgeOrphans, "purge", false, "Enable purge (delete objects the collection does not reference)")
	uploadsReconcileCmd.Flags().BoolVar(&resetMissing, "reset", false, "Enable reset (forget uploads missing from the bucket)")
	uploadsReconcileCmd.Flags().BoolVar(&dryRunUploads, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	uploadsReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runUploadsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	l := rt.logger

	client, err := rt.storageClient()
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("reconciliation needs the s3 upload backend, got %q", rt.cfg.Upload.Backend)
	}

	svc, err := rt.collection(ctx, false)
	if err != nil {
		return err
	}
	svc.AttachStorage(client, rt.cfg.Storage)

	opts := reconcile.ReconcileOptions{
		DoPurge: purgeOrphans,
		DoReset: resetMissing,
		DryRun:  true,
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...")
	plan, _, err := svc.Reconcile(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, plan)

	if !purgeOrphans && !resetMissing {
		l.Info("No actions requested. Use --reset to forget missing uploads or --purge to delete orphaned objects.")
		return nil
	}
	if dryRunUploads {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts.DryRun = false
	opts.Confirmed = true
	l.Info("Applying actions...")
	_, executed, err := svc.Reconcile(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("orphaned", s.Orphaned),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("reset_actions", s.ResetActions),
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
