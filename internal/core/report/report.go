// Package report は出力レコードから集計レポートを作成します。
package report

import (
	"sort"
	"strings"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
)

// Bucket は年齢区分ごとの人数です。
type Bucket struct {
	Label string
	Count int
}

type ageRange struct {
	label string
	lower int // 含まない
	upper int // 含む
}

var ageRanges = []ageRange{
	{label: "18-21", lower: 18, upper: 21},
	{label: "22-28", lower: 21, upper: 28},
	{label: "29-34", lower: 28, upper: 34},
	{label: "35-40", lower: 34, upper: 40},
	{label: "41+", lower: 40, upper: 120},
}

// AgeRanges は年齢を右閉区間 (18,21] (21,28] (28,34] (34,40] (40,120] に分類して数えます。
// どの区間にも入らない年齢は数えません。結果は常に 5 区間を昇順で返します。
func AgeRanges(records []export.Record) []Bucket {
	buckets := make([]Bucket, len(ageRanges))
	for i, r := range ageRanges {
		buckets[i].Label = r.label
	}
	for _, rec := range records {
		for i, r := range ageRanges {
			if rec.Age > r.lower && rec.Age <= r.upper {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// FilterByAge は min 以上 max 以下の年齢のレコードを入力順で返します。
func FilterByAge(records []export.Record, min, max int) []export.Record {
	filtered := make([]export.Record, 0, len(records))
	for _, rec := range records {
		if rec.Age >= min && rec.Age <= max {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// PositionCount は職位ごとの人数です。
type PositionCount struct {
	Position string
	Count    int
}

// CountByPosition は職位名ごとに人数を数え、職位名の昇順で返します。職位が解決できないレコードは除外します。
func CountByPosition(records []export.Record) []PositionCount {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.Position == nil {
			continue
		}
		counts[*rec.Position]++
	}

	result := make([]PositionCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, PositionCount{Position: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result
}

// TypeSplit は BASE とそれ以外 (HONORARY) の人数です。
type TypeSplit struct {
	Base     int
	Honorary int
}

// Total は合計人数を返します。
func (s TypeSplit) Total() int {
	return s.Base + s.Honorary
}

// SplitByType は BASE とそれ以外に分けて数えます。
func SplitByType(records []export.Record) TypeSplit {
	var split TypeSplit
	for _, rec := range records {
		if employee.Type(strings.ToUpper(rec.EmployeeType)) == employee.TypeBase {
			split.Base++
		} else {
			split.Honorary++
		}
	}
	return split
}
