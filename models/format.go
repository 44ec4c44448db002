// ABOUTME: Number formatting helpers for human-readable reports
// ABOUTME: Adds thousands separators to the integer portion of a number

package models

import "github.com/dustin/go-humanize"

// FormatNumber inserts thousands separators into the integer portion of n,
// leaving the fractional digits untouched (1234.56 -> "1,234.56").
func FormatNumber(n float64) string {
	return humanize.Commaf(n)
}
