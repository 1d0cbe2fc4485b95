// Package schedule implements the recurring-schedule engine: expanding
// task definitions into concrete occurrences per calendar date, overlaying
// per-occurrence completion and pause state, gating new definitions against
// time-overlap conflicts, and applying lifecycle mutations.
//
// Every function here is a pure function of its arguments. Wall-clock time
// is always an explicit parameter; nothing reads a hidden global clock, so
// every behavior is deterministic under test.
package schedule
