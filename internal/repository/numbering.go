package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// nextDocumentNumber derives the next sequential document number for a
// prefix/year pair from the most recently issued number ("" if none).
// The suffix resets each year; an unparseable suffix restarts at 1.
func nextDocumentNumber(prefix string, year int, last string) string {
	seq := 1
	if last != "" {
		if idx := strings.LastIndex(last, "-"); idx >= 0 {
			if n, err := strconv.Atoi(last[idx+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

func yearPattern(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-%%", prefix, year)
}
