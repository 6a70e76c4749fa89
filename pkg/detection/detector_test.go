package detection

import (
	"image"
	"testing"
)

// surfaceWithPeaks builds a w x h surface scoring 1.0 at the given
// points and 0 elsewhere.
func surfaceWithPeaks(w, h int, peaks ...image.Point) *ScoreSurface {
	s := NewScoreSurface(w, h)
	for _, p := range peaks {
		s.Set(p.X, p.Y, 1.0)
	}
	return s
}

func TestCandidatesScanOrder(t *testing.T) {
	s := surfaceWithPeaks(10, 4, image.Pt(7, 0), image.Pt(2, 1), image.Pt(5, 1), image.Pt(0, 3))

	got := s.Candidates(0.5)

	expected := []image.Point{{7, 0}, {2, 1}, {5, 1}, {0, 3}}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d candidates, got %d", len(expected), len(got))
	}
	for i, p := range expected {
		if got[i] != p {
			t.Errorf("Candidate %d: expected %v, got %v", i, p, got[i])
		}
	}
}

func TestCandidatesThresholdInclusive(t *testing.T) {
	s := NewScoreSurface(3, 1)
	s.Set(0, 0, 0.99)
	s.Set(1, 0, 0.989)

	got := s.Candidates(0.99)

	if len(got) != 1 || got[0] != image.Pt(0, 0) {
		t.Errorf("Expected only the exact-threshold candidate, got %v", got)
	}
}

func TestLocateEmptySurface(t *testing.T) {
	l := NewLocator(true, false)
	s := NewScoreSurface(20, 20)

	if dets := l.Locate(s, 0.9, 4, 4); len(dets) != 0 {
		t.Errorf("Expected no detections on an empty surface, got %d", len(dets))
	}
}

func TestLocateCollapsesAdjacentCandidates(t *testing.T) {
	l := NewLocator(true, false)
	s := surfaceWithPeaks(30, 5, image.Pt(10, 0), image.Pt(12, 1), image.Pt(14, 2))

	dets := l.Locate(s, 0.5, 4, 4)

	if len(dets) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(dets))
	}
	if dets[0].Point != image.Pt(10, 0) {
		t.Errorf("Expected first candidate kept, got %v", dets[0].Point)
	}
}

func TestLocateGateWalkthrough(t *testing.T) {
	l := NewLocator(true, false)
	s := surfaceWithPeaks(60, 1,
		image.Pt(0, 0), image.Pt(3, 0), image.Pt(20, 0), image.Pt(23, 0), image.Pt(50, 0))

	dets := l.Locate(s, 0.5, 4, 4)

	expected := []int{0, 20, 50}
	if len(dets) != len(expected) {
		t.Fatalf("Expected %d detections, got %d", len(expected), len(dets))
	}
	for i, x := range expected {
		if dets[i].Point.X != x {
			t.Errorf("Detection %d: expected x=%d, got x=%d", i, x, dets[i].Point.X)
		}
	}
}

func TestLocateReverseKeepsLastCandidate(t *testing.T) {
	l := NewLocator(true, true)
	s := surfaceWithPeaks(30, 5, image.Pt(10, 0), image.Pt(12, 1), image.Pt(14, 2))

	dets := l.Locate(s, 0.5, 4, 4)

	if len(dets) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(dets))
	}
	if dets[0].Point != image.Pt(14, 2) {
		t.Errorf("Expected spatially last candidate kept, got %v", dets[0].Point)
	}
}

// A horizontal swatch distinguishes occurrences by their y-coordinate.
func TestLocateHorizontalOrientation(t *testing.T) {
	l := NewLocator(false, false)
	s := surfaceWithPeaks(5, 60, image.Pt(0, 2), image.Pt(1, 5), image.Pt(2, 30))

	dets := l.Locate(s, 0.5, 4, 4)

	if len(dets) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(dets))
	}
	if dets[0].Point != image.Pt(0, 2) {
		t.Errorf("Expected first detection at (0,2), got %v", dets[0].Point)
	}
	if dets[1].Point != image.Pt(2, 30) {
		t.Errorf("Expected second detection at (2,30), got %v", dets[1].Point)
	}
}

func TestLocateBounds(t *testing.T) {
	l := NewLocator(true, false)
	s := surfaceWithPeaks(30, 30, image.Pt(12, 9))

	dets := l.Locate(s, 0.5, 128, 695)

	if len(dets) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(dets))
	}
	want := image.Rect(12, 9, 12+128, 9+695)
	if dets[0].Bounds != want {
		t.Errorf("Expected bounds %v, got %v", want, dets[0].Bounds)
	}
}

func TestLocateGateIsStrict(t *testing.T) {
	l := NewLocator(true, false)
	// Exactly Gate apart stays merged; Gate+1 apart splits.
	s := surfaceWithPeaks(30, 1, image.Pt(0, 0), image.Pt(7, 0), image.Pt(15, 0))

	dets := l.Locate(s, 0.5, 4, 4)

	if len(dets) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(dets))
	}
	if dets[0].Point.X != 0 || dets[1].Point.X != 15 {
		t.Errorf("Expected detections at x=0 and x=15, got %v and %v", dets[0].Point, dets[1].Point)
	}
}

func BenchmarkLocate(b *testing.B) {
	l := NewLocator(true, true)
	s := NewScoreSurface(400, 600)
	for x := 0; x < 400; x += 25 {
		s.Set(x, 100, 1.0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Locate(s, 0.99, 128, 139)
	}
}
