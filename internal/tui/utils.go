package tui

import (
	"slices"
	"strings"
)

// cycle возвращает элемент items, отстоящий от current на delta позиций по кругу.
func cycle[T comparable](items []T, current T, delta int) T {
	i := slices.Index(items, current)
	return items[(i+delta+len(items))%len(items)]
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
