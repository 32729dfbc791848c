// Package rangeset implements an ordered set of non-overlapping half-open byte
// intervals, each carrying a payload.
//
// Insertion overlays: whatever part of an existing interval the new one covers
// takes the new payload, and partially covered intervals are split at the
// boundary. Adjacent intervals with equal payloads are merged. Removal leaves a
// gap and never merges neighbours.
package rangeset
