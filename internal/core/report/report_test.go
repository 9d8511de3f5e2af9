package report

import (
	"testing"

	"github.com/ogurasousui/employees-management/internal/core/export"
)

func rec(age int, positionName string, empType string) export.Record {
	r := export.Record{Age: age, EmployeeType: empType}
	if positionName != "" {
		name := positionName
		r.Position = &name
	}
	return r
}

func TestAgeRanges(t *testing.T) {
	t.Parallel()

	records := []export.Record{
		rec(18, "", "BASE"),
		rec(19, "", "BASE"),
		rec(21, "", "BASE"),
		rec(22, "", "BASE"),
		rec(28, "", "BASE"),
		rec(34, "", "BASE"),
		rec(40, "", "BASE"),
		rec(41, "", "BASE"),
		rec(120, "", "BASE"),
		rec(121, "", "BASE"),
	}

	buckets := AgeRanges(records)
	want := []Bucket{
		{Label: "18-21", Count: 2},
		{Label: "22-28", Count: 2},
		{Label: "29-34", Count: 1},
		{Label: "35-40", Count: 1},
		{Label: "41+", Count: 2},
	}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], buckets[i])
		}
	}
}

func TestAgeRanges_EmptyStillReturnsAllBuckets(t *testing.T) {
	t.Parallel()

	buckets := AgeRanges(nil)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(buckets))
	}
	for _, b := range buckets {
		if b.Count != 0 {
			t.Fatalf("expected zero counts, got %+v", b)
		}
	}
}

func TestFilterByAge(t *testing.T) {
	t.Parallel()

	records := []export.Record{rec(24, "", "BASE"), rec(25, "", "BASE"), rec(35, "", "BASE"), rec(36, "", "BASE"), rec(30, "", "BASE")}
	filtered := FilterByAge(records, 25, 35)

	if len(filtered) != 3 {
		t.Fatalf("expected 3 records, got %d", len(filtered))
	}
	for i, want := range []int{25, 35, 30} {
		if filtered[i].Age != want {
			t.Fatalf("record %d: expected age %d, got %d", i, want, filtered[i].Age)
		}
	}
}

func TestCountByPosition(t *testing.T) {
	t.Parallel()

	records := []export.Record{
		rec(30, "Nurse", "BASE"),
		rec(30, "Analyst", "BASE"),
		rec(30, "Nurse", "HONORARY"),
		rec(30, "", "BASE"),
	}

	counts := CountByPosition(records)
	if len(counts) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(counts))
	}
	if counts[0] != (PositionCount{Position: "Analyst", Count: 1}) || counts[1] != (PositionCount{Position: "Nurse", Count: 2}) {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestSplitByType(t *testing.T) {
	t.Parallel()

	records := []export.Record{
		rec(30, "", "BASE"),
		rec(30, "", "base"),
		rec(30, "", "HONORARY"),
		rec(30, "", "CONTRACTOR"),
	}

	split := SplitByType(records)
	if split.Base != 2 || split.Honorary != 2 || split.Total() != 4 {
		t.Fatalf("unexpected split %+v", split)
	}
}
