// Package estimate turns directional hornet sightings into nest location estimates.
//
// # Overview
//
// An Observation records where the observer stood, the compass bearing the
// hornet flew off on, and how long its round trip took. The Calculator converts
// that into a HiveLocation: a projected position, the one-way distance used for
// the projection, and a confidence radius.
//
// Two distance models are available:
//   - Empirical (MethodEmpirical): 100 m of one-way distance per minute of
//     round-trip time. This is the field-validated standard and always available.
//   - Theoretical (MethodTheoretical): speed × round-trip time / 2. Requires the
//     observation to carry a flight speed.
//
// # Usage
//
//	obs, err := estimate.NewObservation(48.8584, 2.2945, 45, 390)
//	if err != nil {
//	    // out-of-range input, see ValidationError
//	}
//	calc := estimate.NewCalculator()
//	hive, err := calc.FromSingleObservation(obs, estimate.MethodEmpirical)
//	// hive.DistanceFromObserver == 650
//
// Several observations of the same colony can be combined:
//
//	hive, err := calc.FromMultipleObservations([]estimate.Observation{a, b, c}, estimate.MethodEmpirical)
//
// Triangulation averages the independently projected estimates and widens the
// confidence radius by the largest distance between that centroid and any single
// estimate. The distance and bearing of the result are measured from the first
// observation in the slice, so reordering the input changes those two fields.
//
// # Errors
//
// All failures are caller input errors and can be matched with errors.Is:
// ErrValidation (from NewObservation), ErrInvalidObservation, ErrSpeedRequired,
// ErrUnknownMethod and ErrInsufficientObservations. No partial result is ever
// returned alongside an error.
//
// Thread safety: a Calculator holds no mutable state and is safe for concurrent use.
package estimate
