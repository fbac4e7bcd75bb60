// Package entry contains the Entry entity: a share of a delivery's quantities
// located in one zone, with its own processing timestamps.
//
// Entries hold their delivery and zone by id only. Their change records are
// filed under the delivery so a delivery's history includes them.
package entry
