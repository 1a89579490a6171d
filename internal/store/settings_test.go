package store

import (
	"sync"
	"testing"
)

func testSettings() *Settings {
	cfg := &Config{LotSize: 0.1, MLThreshold: 0.7}
	return NewSettings(cfg)
}

func TestSettingsSnapshot(t *testing.T) {
	s := testSettings()
	snap := s.Snapshot()
	if snap.LotSize != 0.1 || snap.MLThreshold != 0.7 {
		t.Errorf("Expected seeded values, got %+v", snap)
	}
}

func TestSettingsUpdate(t *testing.T) {
	s := testSettings()

	lot := 0.5
	if err := s.Update(&lot, nil); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.LotSize != 0.5 {
		t.Errorf("Expected lot size 0.5, got %v", snap.LotSize)
	}
	if snap.MLThreshold != 0.7 {
		t.Errorf("Expected threshold untouched, got %v", snap.MLThreshold)
	}

	thr := 0.9
	if err := s.Update(nil, &thr); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := s.Snapshot().MLThreshold; got != 0.9 {
		t.Errorf("Expected threshold 0.9, got %v", got)
	}
}

func TestSettingsUpdateValidatesBeforeApplying(t *testing.T) {
	s := testSettings()

	badLot := -1.0
	goodThr := 0.9
	if err := s.Update(&badLot, &goodThr); err == nil {
		t.Fatal("Expected a validation error for a negative lot size")
	}
	snap := s.Snapshot()
	if snap.LotSize != 0.1 || snap.MLThreshold != 0.7 {
		t.Errorf("Expected nothing applied on a failed update, got %+v", snap)
	}

	badThr := 1.5
	if err := s.Update(nil, &badThr); err == nil {
		t.Error("Expected a validation error for an out-of-range threshold")
	}
}

func TestSettingsConcurrentAccess(t *testing.T) {
	s := testSettings()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lot := 0.2
			_ = s.Update(&lot, nil)
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			if snap.LotSize != 0.1 && snap.LotSize != 0.2 {
				t.Errorf("Observed torn snapshot: %+v", snap)
			}
		}()
	}
	wg.Wait()
}
