package data

import _ "embed"

// SampleArrivals is a small arrival record set for a five floor building:
// round 1 brings 1->4 and 5->3, round 3 brings 1->2, round 5 brings 4->2.
//
//go:embed sample_arrivals.csv
var SampleArrivals []byte

// SampleMaxFloor is the smallest building SampleArrivals fits.
const SampleMaxFloor = 5
