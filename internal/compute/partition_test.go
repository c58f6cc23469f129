package compute

import (
	"errors"
	"testing"

	"github.com/san-kum/collisim/internal/dynamo"
)

func TestPartition_Coverage(t *testing.T) {
	for n := 0; n <= 64; n++ {
		for workers := 1; workers <= 17; workers++ {
			ranges := Partition(n, workers)

			if n == 0 {
				if ranges != nil {
					t.Fatalf("n=0 t=%d: expected no ranges, got %v", workers, ranges)
				}
				continue
			}
			if len(ranges) > workers {
				t.Fatalf("n=%d t=%d: %d ranges", n, workers, len(ranges))
			}
			if err := Verify(ranges, n); err != nil {
				t.Fatalf("n=%d t=%d: %v", n, workers, err)
			}
			for i := range ranges {
				for j := i + 1; j < len(ranges); j++ {
					if ranges[i].Overlaps(ranges[j]) {
						t.Fatalf("n=%d t=%d: %v overlaps %v", n, workers, ranges[i], ranges[j])
					}
				}
			}
		}
	}
}

func TestPartition_RemainderGoesLast(t *testing.T) {
	ranges := Partition(2000, 6)
	want := []dynamo.Range{{Start: 0, End: 333}, {Start: 333, End: 666}, {Start: 666, End: 999}, {Start: 999, End: 1332}, {Start: 1332, End: 1665}, {Start: 1665, End: 2000}}

	if len(ranges) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(ranges), len(want))
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, ranges[i], want[i])
		}
	}
}

func TestPartition_FewerParticlesThanWorkers(t *testing.T) {
	ranges := Partition(3, 8)

	if len(ranges) != 8 {
		t.Fatalf("got %d ranges, want 8", len(ranges))
	}
	for i, r := range ranges[:7] {
		if !r.Empty() {
			t.Errorf("range %d = %v, want empty", i, r)
		}
	}
	if last := ranges[7]; last != (dynamo.Range{Start: 0, End: 3}) {
		t.Errorf("last range = %v, want [0,3)", last)
	}
}

func TestPartition_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		n, t int
	}{
		{"no particles", 0, 4},
		{"no workers", 100, 0},
		{"negative particles", -5, 4},
		{"negative workers", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Partition(tt.n, tt.t); got != nil {
				t.Errorf("expected nil, got %v", got)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		ranges []dynamo.Range
		n      int
		want   error
	}{
		{"exact", []dynamo.Range{{Start: 0, End: 4}, {Start: 4, End: 10}}, 10, nil},
		{"empty set", nil, 0, nil},
		{"gap in the middle", []dynamo.Range{{Start: 0, End: 4}, {Start: 5, End: 10}}, 10, ErrPartitionGap},
		{"short", []dynamo.Range{{Start: 0, End: 4}, {Start: 4, End: 9}}, 10, ErrPartitionGap},
		{"overlap", []dynamo.Range{{Start: 0, End: 5}, {Start: 4, End: 10}}, 10, ErrPartitionOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.ranges, tt.n)
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
