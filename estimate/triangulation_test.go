package estimate

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jyjeanne/hornet-nest-locator/geo"
)

func TestFromMultipleObservations_RequiresTwo(t *testing.T) {
	calc := newTestCalculator()
	single := mustObservation(t, 48.8584, 2.2945, 45, 300)

	tests := []struct {
		name string
		obs  []Observation
	}{
		{"nil", nil},
		{"empty", []Observation{}},
		{"one", []Observation{single}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hive, err := calc.FromMultipleObservations(tt.obs, MethodEmpirical)
			if !errors.Is(err, ErrInsufficientObservations) {
				t.Fatalf("expected ErrInsufficientObservations, got %v", err)
			}
			if hive != (HiveLocation{}) {
				t.Errorf("expected no partial result, got %+v", hive)
			}
		})
	}
}

func TestFromMultipleObservations_DivergentBearingsInflateConfidence(t *testing.T) {
	calc := newTestCalculator()
	north := mustObservation(t, 48.8584, 2.2945, 0, 300)
	east := mustObservation(t, 48.8584, 2.2945, 90, 300)

	hive, err := calc.FromMultipleObservations([]Observation{north, east}, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations: %v", err)
	}
	if hive.ConfidenceRadius <= 100 {
		t.Errorf("expected confidence > 100 m, got %v", hive.ConfidenceRadius)
	}
	if hive.CalculationMethod != "triangulation_2_points_empirical" {
		t.Errorf("unexpected method tag %q", hive.CalculationMethod)
	}
}

func TestFromMultipleObservations_CentroidAndSpread(t *testing.T) {
	calc := newTestCalculator()
	obs := []Observation{
		mustObservation(t, 48.8584, 2.2945, 30, 300),
		mustObservation(t, 48.8600, 2.3000, 300, 240),
		mustObservation(t, 48.8650, 2.2900, 160, 200),
	}

	estimates, err := calc.Estimates(obs, MethodEmpirical)
	if err != nil {
		t.Fatalf("Estimates: %v", err)
	}
	if len(estimates) != 3 {
		t.Fatalf("expected 3 estimates, got %d", len(estimates))
	}

	hive, err := calc.FromMultipleObservations(obs, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations: %v", err)
	}

	var lat, lon, conf float64
	for _, e := range estimates {
		lat += e.Latitude
		lon += e.Longitude
		conf += e.ConfidenceRadius
	}
	lat /= 3
	lon /= 3
	conf /= 3

	if hive.Latitude != lat || hive.Longitude != lon {
		t.Errorf("expected centroid (%v, %v), got (%v, %v)", lat, lon, hive.Latitude, hive.Longitude)
	}

	spread := 0.0
	for _, e := range estimates {
		spread = math.Max(spread, geo.HaversineDistance(lat, lon, e.Latitude, e.Longitude))
	}
	if math.Abs(hive.ConfidenceRadius-(conf+spread)) > 1e-9 {
		t.Errorf("expected confidence %v, got %v", conf+spread, hive.ConfidenceRadius)
	}
	if hive.CalculationMethod != "triangulation_3_points_empirical" {
		t.Errorf("unexpected method tag %q", hive.CalculationMethod)
	}
}

func TestFromMultipleObservations_IdenticalObservations(t *testing.T) {
	calc := newTestCalculator()
	a := mustObservation(t, 48.8584, 2.2945, 45, 390)
	b := mustObservation(t, 48.8584, 2.2945, 45, 390)

	single, err := calc.FromSingleObservation(a, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromSingleObservation: %v", err)
	}
	hive, err := calc.FromMultipleObservations([]Observation{a, b}, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations: %v", err)
	}

	if hive.Latitude != single.Latitude || hive.Longitude != single.Longitude {
		t.Errorf("expected centroid at the shared estimate, got %v, %v", hive.Latitude, hive.Longitude)
	}
	if hive.ConfidenceRadius != single.ConfidenceRadius {
		t.Errorf("agreeing observations should add no spread: %v vs %v", hive.ConfidenceRadius, single.ConfidenceRadius)
	}
	if math.Abs(hive.DistanceFromObserver-650) > 1 {
		t.Errorf("expected ~650 m from the observer, got %v", hive.DistanceFromObserver)
	}
	if math.Abs(hive.BearingFromObserver-45) > 0.01 {
		t.Errorf("expected ~45°, got %v", hive.BearingFromObserver)
	}
}

// Distance and bearing are reported from the first observation, so the order
// of the input is part of the result.
func TestFromMultipleObservations_FirstObservationIsReference(t *testing.T) {
	calc := newTestCalculator()
	a := mustObservation(t, 48.8584, 2.2945, 90, 300)
	b := mustObservation(t, 48.8634, 2.3045, 180, 300)

	ab, err := calc.FromMultipleObservations([]Observation{a, b}, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations(a, b): %v", err)
	}
	ba, err := calc.FromMultipleObservations([]Observation{b, a}, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations(b, a): %v", err)
	}

	if math.Abs(ab.Latitude-ba.Latitude) > 1e-12 || math.Abs(ab.Longitude-ba.Longitude) > 1e-12 {
		t.Errorf("centroid should not depend on order: %v,%v vs %v,%v", ab.Latitude, ab.Longitude, ba.Latitude, ba.Longitude)
	}

	wantAB := geo.HaversineDistance(a.Latitude(), a.Longitude(), ab.Latitude, ab.Longitude)
	wantBA := geo.HaversineDistance(b.Latitude(), b.Longitude(), ba.Latitude, ba.Longitude)
	if ab.DistanceFromObserver != wantAB {
		t.Errorf("expected distance from first observation %v, got %v", wantAB, ab.DistanceFromObserver)
	}
	if ba.DistanceFromObserver != wantBA {
		t.Errorf("expected distance from first observation %v, got %v", wantBA, ba.DistanceFromObserver)
	}
	if math.Abs(ab.DistanceFromObserver-ba.DistanceFromObserver) < 1 {
		t.Errorf("expected order-dependent distances, got %v and %v", ab.DistanceFromObserver, ba.DistanceFromObserver)
	}

	wantBearing := geo.BearingBetweenPoints(a.Latitude(), a.Longitude(), ab.Latitude, ab.Longitude)
	if ab.BearingFromObserver != wantBearing {
		t.Errorf("expected bearing %v, got %v", wantBearing, ab.BearingFromObserver)
	}
}

func TestFromMultipleObservations_Theoretical(t *testing.T) {
	calc := newTestCalculator()
	a := mustObservation(t, 48.8584, 2.2945, 10, 300, WithSpeed(6))
	b := mustObservation(t, 48.8550, 2.3050, 330, 280, WithSpeed(6.5))
	c := mustObservation(t, 48.8500, 2.2900, 40, 250, WithSpeed(7))

	hive, err := calc.FromMultipleObservations([]Observation{a, b, c}, MethodTheoretical)
	if err != nil {
		t.Fatalf("FromMultipleObservations: %v", err)
	}
	if hive.CalculationMethod != "triangulation_3_points_theoretical" {
		t.Errorf("unexpected method tag %q", hive.CalculationMethod)
	}
	if hive.ConfidenceRadius < MinConfidenceRadiusMeters {
		t.Errorf("confidence %v below floor", hive.ConfidenceRadius)
	}
}

func TestFromMultipleObservations_PropagatesErrors(t *testing.T) {
	calc := newTestCalculator()
	withSpeed := mustObservation(t, 48.8584, 2.2945, 10, 300, WithSpeed(6))
	withoutSpeed := mustObservation(t, 48.8550, 2.3050, 330, 280)

	_, err := calc.FromMultipleObservations([]Observation{withSpeed, withoutSpeed}, MethodTheoretical)
	if !errors.Is(err, ErrSpeedRequired) {
		t.Errorf("expected ErrSpeedRequired, got %v", err)
	}

	_, err = calc.FromMultipleObservations([]Observation{withSpeed, withoutSpeed}, Method("median"))
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}

	_, err = calc.FromMultipleObservations([]Observation{withSpeed, {}}, MethodEmpirical)
	if !errors.Is(err, ErrInvalidObservation) {
		t.Errorf("expected ErrInvalidObservation, got %v", err)
	}
}

func TestTriangulate_ProjectsEachObservationOnce(t *testing.T) {
	calls := 0
	calc := NewCalculator(WithClock(func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Second)
	}))
	observations := []Observation{
		mustObservation(t, 50.8503, 4.3517, 45, 300),
		mustObservation(t, 50.8520, 4.3600, 315, 300),
	}

	hive, estimates, err := calc.Triangulate(observations, MethodEmpirical)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 clock reads (2 projections + centroid), got %d", calls)
	}
	if len(estimates) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(estimates))
	}
	for i, est := range estimates {
		if want := fixedNow.Add(time.Duration(i+1) * time.Second); !est.Timestamp.Equal(want) {
			t.Errorf("estimate %d timestamp = %v, want %v", i, est.Timestamp, want)
		}
	}
	wantLat := (estimates[0].Latitude + estimates[1].Latitude) / 2
	wantLon := (estimates[0].Longitude + estimates[1].Longitude) / 2
	if hive.Latitude != wantLat || hive.Longitude != wantLon {
		t.Errorf("centroid (%v, %v) not built from returned estimates (%v, %v)", hive.Latitude, hive.Longitude, wantLat, wantLon)
	}

	viaFrom, err := NewCalculator(WithClock(func() time.Time { return fixedNow })).FromMultipleObservations(observations, MethodEmpirical)
	if err != nil {
		t.Fatalf("FromMultipleObservations: %v", err)
	}
	if viaFrom.Latitude != hive.Latitude || viaFrom.ConfidenceRadius != hive.ConfidenceRadius {
		t.Errorf("FromMultipleObservations %+v differs from Triangulate %+v", viaFrom, hive)
	}
}

func TestTriangulate_NoPartialEstimates(t *testing.T) {
	calc := newTestCalculator()
	observations := []Observation{
		mustObservation(t, 50.8503, 4.3517, 45, 300),
		mustObservation(t, 50.8520, 4.3600, 315, 300),
	}
	hive, estimates, err := calc.Triangulate(observations, MethodTheoretical)
	if !errors.Is(err, ErrSpeedRequired) {
		t.Fatalf("expected ErrSpeedRequired, got %v", err)
	}
	if estimates != nil || hive != (HiveLocation{}) {
		t.Errorf("expected no partial result, got %+v %+v", hive, estimates)
	}
}
