package accrual

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestComputeAccrued(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		rate        float64
		cap         float64
		want        float64
		wantCapped  bool
		wantSkew    bool
		wantCounted float64
	}{
		{
			name:        "two hours under cap",
			elapsed:     2 * time.Hour,
			rate:        10,
			cap:         72,
			want:        20,
			wantCounted: 2,
		},
		{
			name:        "hundred hours over cap",
			elapsed:     100 * time.Hour,
			rate:        10,
			cap:         72,
			want:        720,
			wantCapped:  true,
			wantCounted: 72,
		},
		{
			name:        "exactly at cap is not capped",
			elapsed:     72 * time.Hour,
			rate:        1,
			cap:         72,
			want:        72,
			wantCounted: 72,
		},
		{
			name:     "clock skew clamps to zero",
			elapsed:  -5 * time.Minute,
			rate:     10,
			cap:      72,
			want:     0,
			wantSkew: true,
		},
		{
			name:        "uncapped",
			elapsed:     1000 * time.Hour,
			rate:        2,
			cap:         Uncapped,
			want:        2000,
			wantCounted: 1000,
		},
		{
			name:        "zero cap means uncapped",
			elapsed:     90 * time.Hour,
			rate:        1,
			cap:         0,
			want:        90,
			wantCounted: 90,
		},
		{
			name:        "negative rate accrues nothing",
			elapsed:     3 * time.Hour,
			rate:        -4,
			cap:         72,
			want:        0,
			wantCounted: 3,
		},
		{
			name:        "half hour",
			elapsed:     30 * time.Minute,
			rate:        7,
			cap:         72,
			want:        3.5,
			wantCounted: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAccrued(epoch, epoch.Add(tt.elapsed), tt.rate, tt.cap)
			if got.Accrued != tt.want {
				t.Errorf("ComputeAccrued() accrued = %v, want %v", got.Accrued, tt.want)
			}
			if got.WasCapped != tt.wantCapped {
				t.Errorf("ComputeAccrued() wasCapped = %v, want %v", got.WasCapped, tt.wantCapped)
			}
			if got.ClockSkew != tt.wantSkew {
				t.Errorf("ComputeAccrued() clockSkew = %v, want %v", got.ClockSkew, tt.wantSkew)
			}
			if got.CountedHours != tt.wantCounted {
				t.Errorf("ComputeAccrued() countedHours = %v, want %v", got.CountedHours, tt.wantCounted)
			}
			if got.Accrued < 0 || got.ElapsedHours < 0 {
				t.Errorf("ComputeAccrued() returned negative values: %+v", got)
			}
		})
	}
}

func TestComputeAccrued_Monotonic(t *testing.T) {
	prev := 0.0
	for minutes := 0; minutes <= 100*60; minutes += 17 {
		got := ComputeAccrued(epoch, epoch.Add(time.Duration(minutes)*time.Minute), 13.5, 72).Accrued
		if got < prev {
			t.Fatalf("accrual decreased at %d minutes: %v < %v", minutes, got, prev)
		}
		prev = got
	}
}

func TestComputeAccrued_CapIdempotent(t *testing.T) {
	const capHours = 72
	base := ComputeAccrued(epoch, epoch.Add((capHours+1)*time.Hour), 9.25, capHours)
	for _, extra := range []time.Duration{2 * time.Hour, 50 * time.Hour, 1000 * time.Hour} {
		got := ComputeAccrued(epoch, epoch.Add(capHours*time.Hour+extra), 9.25, capHours)
		if got.Accrued != base.Accrued {
			t.Errorf("beyond cap by %v: accrued = %v, want %v", extra, got.Accrued, base.Accrued)
		}
		if !got.WasCapped {
			t.Errorf("beyond cap by %v: expected wasCapped", extra)
		}
	}
}
