// Package network turns the raw island description into a road graph and a
// build status.
//
// The input is a flat list of non-negative integers
//
//	n m x1 y1 x2 y2 ... xm ym
//
// where n is the number of cities and each (xi, yi) pair is a requested
// highway between two cities numbered 1..n. Every island already has a
// coastal road visiting the cities in order (1-2, 2-3, ..., n-1 - n, n-1),
// so the built graph is that ring plus the requested highways.
//
// Malformed input never aborts ingestion: each problem is recorded on the
// [Network] and forces [StatusUnbuildable], but every valid highway is still
// added so the rest of the network can be inspected and rendered.
package network
