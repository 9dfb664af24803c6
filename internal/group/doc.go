// Package group resolves group cards of a batch into group records.
//
// Membership is an index into the batch keyed by uid. Resolution is a
// single lookup per member and never expands a member that is itself a
// group, so cyclic membership needs no special handling.
package group
