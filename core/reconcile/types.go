package reconcile

import (
	"strings"
	"time"
)

// Item is an upload recorded in the state.
type Item struct {
	// Kind groups items, e.g. "image" or "metadata".
	Kind string `json:"kind"`
	// Index is the entry the item belongs to, or -1 for collection-level items.
	Index int `json:"index"`
	// URI is the recorded public URI.
	URI string `json:"uri"`
}

// ReconcileResult represents the reconciliation output for a single object key.
type ReconcileResult struct {
	// Key is the object key in the bucket.
	Key string `json:"key"`

	// Item is the state record, nil when only the bucket has the object.
	Item *Item `json:"item,omitempty"`

	// StatePresent indicates whether the state records an upload for the key.
	StatePresent bool `json:"state_present"`

	// StoragePresent indicates whether the object exists in the bucket.
	StoragePresent bool `json:"storage_present"`
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Adapter provides the state side of the reconciliation.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration

	// Prefixes are the bucket prefixes listed for the storage side.
	Prefixes []string
}

// CacheKey returns a unique key for caching based on spec parameters.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + strings.Join(s.Prefixes, "|")
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionResetUpload forgets a recorded upload so it is sent again.
	ActionResetUpload ActionType = "reset_upload"
	// ActionDeleteStorage deletes an orphaned object from storage.
	ActionDeleteStorage ActionType = "delete_storage"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the object key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Results contains per-key reconciliation data.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique object keys.
	TotalItems int `json:"total_items"`

	// MissingStorage counts recorded uploads whose object is gone.
	MissingStorage int `json:"missing_storage"`

	// Orphaned counts objects the state does not know.
	Orphaned int `json:"orphaned"`

	// ResetActions counts planned reset actions.
	ResetActions int `json:"reset_actions"`

	// PurgeActions counts planned purge (delete) actions.
	PurgeActions int `json:"purge_actions"`
}

// ReconcileOptions controls reconcile behavior for reset/purge operations.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoReset enables forgetting uploads whose object is missing.
	DoReset bool

	// DoPurge enables deletion of orphaned objects.
	DoPurge bool

	// Confirmed indicates user has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
