// Package syncer bulk-copies a music library to its serving location by
// shelling out to rsync, one invocation per top-level artist directory.
//
// Delegating to rsync rather than copying files directly buys delta
// transfer, resumability via --partial, and attribute preservation for
// free. The per-directory granularity keeps individual invocations
// short and lets a bounded worker pool overlap transfers.
package syncer
