package store

import (
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func BenchmarkJournalAppend(b *testing.B) {
	b.ReportAllocs()
	j := New(filepath.Join(b.TempDir(), "bench.jsonl"))

	lat := make([]int64, 0, b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		start := time.Now()
		if err := j.Append(sampleRecord(i)); err != nil {
			b.Fatalf("append failed: %v", err)
		}
		lat = append(lat, time.Since(start).Nanoseconds())
	}
	b.StopTimer()

	if len(lat) == 0 {
		return
	}
	sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
	p99 := lat[(len(lat)*99)/100]
	b.ReportMetric(float64(p99), "p99-ns/op")
	b.ReportMetric(float64(lat[len(lat)-1]), "max-ns/op")
}
