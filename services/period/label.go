package period

import (
	"fmt"

	"asokatrip/models"
)

// Label is the human readable name of a period, as shown on screen and in exports.
func Label(token models.FilterToken, start, end string) string {
	switch token {
	case models.FilterMonth:
		return "Bulan Ini"
	case models.FilterWeek:
		return "Minggu Ini"
	case models.FilterYear:
		return "Tahun Ini"
	case models.FilterCustom:
		if start != "" && end != "" {
			return fmt.Sprintf("%s s/d %s", start, end)
		}
	}
	return "Semua Waktu"
}
