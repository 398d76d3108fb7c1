// Package survey reads field survey sheets into validated observations.
//
// A survey sheet is a YAML document listing the sightings taken around one
// suspected colony:
//
//	method: empirical
//	observations:
//	  - latitude: 48.8584
//	    longitude: 2.2945
//	    bearing: 45
//	    round_trip_time: 390      # seconds
//	    identifying_mark: white dot
//	  - latitude: 48.8610
//	    longitude: 2.2990
//	    bearing: 20
//	    round_trip: {minutes: 5, seconds: 10}
//	    speed: 6.5
//	    timestamp: 2024-08-14T15:30:00Z
//	    notes: strong headwind
//
// Structural problems (missing fields, unknown method) are reported with the
// YAML path of the offending field; range problems come from
// estimate.NewObservation and name the record number.
package survey
