// Package store persists the collection state as JSON documents under fixed keys.
//
// A KV backend holds raw bytes: GormKV keeps them in the kv_entries table of
// the configured database, RedisKV in a Redis instance under a key prefix. The
// typed stores on top (TemplateStore, EntryStore, CollectionStore and
// RarityStore) encode and decode the documents.
//
// # Usage
//
//	kv, err := store.Open(cfg.Store, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//
//	entries, err := store.NewEntryStore(kv).Load(ctx, "gold")
package store
