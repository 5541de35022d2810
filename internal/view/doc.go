// Package view assembles the client snapshot of a device graph.
//
// A Builder composes the label resolvers with gap and boot analysis into
// v1alpha1 records: one Disk record per disk or raid with its partitions and
// gaps in disk order, and one ZPool record per pool with its datasets.
package view
