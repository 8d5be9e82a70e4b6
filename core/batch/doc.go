// Package batch runs a per-item task over a slice in fixed-size chunks.
//
// Every task of a chunk runs concurrently and the next chunk starts only once
// all of them have settled, so no more than size tasks are in flight. Results
// come back in item order with a per-item error.
package batch
