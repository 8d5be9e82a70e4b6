// Package collection manages one NFT collection from spreadsheet to uploaded
// metadata.
//
// The Service owns the persisted entries: every load-modify-save of the entry
// list runs under a single mutex, and each upload pipeline is guarded so a
// second trigger joins the run already in flight instead of racing it.
//
// # Workflow
//
//  1. GenerateTemplate or SaveTemplate sets the metadata template.
//  2. ImportCSV loads the item data, one entry per row.
//  3. AssignImages attaches local image files by the number in their name.
//  4. UploadImages pushes the images, in batches, and records their URIs.
//  5. UploadMetadata regenerates and uploads one JSON document per entry.
//  6. GenerateCollectionMetadata and UploadCollectionMetadata do the same for
//     the collection NFT itself.
//
// Export packages the generated metadata as a zip archive for offline use.
// With a bucket attached, Reconcile finds recorded uploads whose object was
// deleted and resets them so the next upload run sends them again.
//
// # HTTP API
//
// The Handler exposes the workflow under /collection.
package collection
