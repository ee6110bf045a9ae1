package processor

import "testing"

func TestGetWorkerID_StableAndInRange(t *testing.T) {
	for _, sym := range []string{"AAPL", "GOOGL", "TSLA", "MSFT", "AMZN", "NVDA"} {
		first := getWorkerID([]byte(sym), 3)
		if first < 0 || first >= 3 {
			t.Fatalf("worker %d out of range for %s", first, sym)
		}
		for i := 0; i < 5; i++ {
			if got := getWorkerID([]byte(sym), 3); got != first {
				t.Errorf("%s moved from worker %d to %d", sym, first, got)
			}
		}
	}
}
