// Package batch splits an ordered list of work items into fixed-size waves and
// processes them sequentially, with early stop and progress reporting.
//
// The catalog loader uses it to walk the shard key-space: a batch size of 1
// fetches shards strictly one after another, larger sizes fetch a wave of
// shards concurrently inside each callback while keeping wave order.
package batch
