// Package importer は CSV 等から読み込んだ社員行を検証し、有効な行のみを一括登録します。
package importer

import (
	"fmt"
	"strings"
)

// BatchRow は型変換前の取り込み行です。値はすべて入力された文字列のままです。
type BatchRow struct {
	// Row はデータ行の 1 始まりの番号です (ヘッダ行は含みません)。0 の場合は入力順から補います。
	Row          int
	NSS          string
	FirstName    string
	LastNameF    string
	LastNameM    string
	Position     string
	Municipality string
	BirthDate    string
	EmployeeType string
	HourlyRate   string
	HoursWorked  string
}

// Stage は行処理の段階です。
type Stage string

const (
	StageParse    Stage = "parse"
	StageResolve  Stage = "resolve_references"
	StageValidate Stage = "validate"
)

// RowError は 1 行分の失敗です。
type RowError struct {
	Row   int
	NSS   string
	Stage Stage
	Err   error
}

func (e *RowError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "row %d", e.Row)
	if nss := strings.TrimSpace(e.NSS); nss != "" {
		fmt.Fprintf(&b, " (nss %s)", nss)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Outcome はバッチ単位の取り込み結果です。
type Outcome struct {
	// Inserted は登録した件数です。DryRun の場合は登録可能だった件数です。
	Inserted int
	Failed   int
	// Errors は失敗行のメッセージを入力順に保持します。
	Errors   []string
	Failures []*RowError
	DryRun   bool
}

func (o *Outcome) addFailure(rowErr *RowError) {
	o.Failed++
	o.Failures = append(o.Failures, rowErr)
	o.Errors = append(o.Errors, rowErr.Error())
}
