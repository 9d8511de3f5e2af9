// Package memory はプロセス内メモリで動作するリポジトリ実装を提供します。
// テストやデータベースを持たない一時的な検証用途を想定しています。
package memory
