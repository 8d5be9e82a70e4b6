package reconcile

import (
	"context"
	"fmt"

	"nft-toolkit/core/storage"

	"github.com/minio/minio-go/v7"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, client storage.Client, bucket string, opts ReconcileOptions) (*ReconcilePlan, error) {
	results, err := ReconcileAll(ctx, spec, client, bucket)
	if err != nil {
		return nil, err
	}

	summary, actions := buildPlanFromResults(results, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, spec *Spec, client storage.Client, bucket string, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	defer InvalidateCache(spec)

	var resetKeys, deleteKeys []string
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionResetUpload:
			resetKeys = append(resetKeys, action.Key)
		case ActionDeleteStorage:
			deleteKeys = append(deleteKeys, action.Key)
		}
	}

	if len(resetKeys) > 0 {
		mutator, ok := spec.Adapter.(Mutator)
		if !ok {
			return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
		}
		if err := mutator.ResetUploads(ctx, resetKeys); err != nil {
			return executed, fmt.Errorf("failed to reset uploads: %w", err)
		}
		executed += len(resetKeys)
	}

	for _, key := range deleteKeys {
		if err := client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return executed, fmt.Errorf("failed to delete storage key %s: %w", key, err)
		}
		executed++
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, spec *Spec, client storage.Client, bucket string, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, client, bucket, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, client, bucket, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(results []ReconcileResult, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		switch {
		case result.StatePresent && !result.StoragePresent:
			summary.MissingStorage++
			if opts.DoReset {
				actions = append(actions, Action{
					Type:   ActionResetUpload,
					Key:    result.Key,
					Reason: fmt.Sprintf("%s of entry %d missing in storage", result.Item.Kind, result.Item.Index),
				})
				summary.ResetActions++
			}
		case !result.StatePresent && result.StoragePresent:
			summary.Orphaned++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionDeleteStorage,
					Key:    result.Key,
					Reason: "not referenced by collection state",
				})
				summary.PurgeActions++
			}
		}
	}

	return summary, actions
}
