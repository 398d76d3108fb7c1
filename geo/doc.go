// Package geo provides great-circle calculations on a spherical Earth.
//
// It contains:
//   - Destination point projection along a bearing
//   - Haversine distance between two points
//   - Initial bearing between two points
//   - Coordinate and compass bearing formatting
//
// Inputs and outputs are decimal degrees and meters. Trigonometry is done in
// radians internally and nothing is rounded; rounding belongs to callers that
// present the values.
package geo
