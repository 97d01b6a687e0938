// Package suggest хранит словарь подсказок для полей с автодополнением
// (названия продуктов, категории паролей).
package suggest

import (
	"slices"
	"strings"
)

// QuickPickSize - сколько вариантов показывать в быстром выборе.
const QuickPickSize = 15

// Vocabulary - упорядоченный список уникальных значений: сначала значения с сервера,
// затем недостающие значения запасного набора.
// Не потокобезопасен: владелец (контроллер) сам держит блокировку.
type Vocabulary struct {
	items    []string
	fallback []string
}

// New создает словарь, изначально заполненный запасным набором.
func New(fallback ...string) *Vocabulary {
	v := &Vocabulary{fallback: slices.Clone(fallback)}
	v.Replace(nil)
	return v
}

// Replace заменяет содержимое значениями с сервера и дополняет его запасным набором.
func (v *Vocabulary) Replace(items []string) {
	merged := make([]string, 0, len(items)+len(v.fallback))
	merged = append(merged, items...)
	merged = append(merged, v.fallback...)
	v.items = dedupe(merged)
}

// UseFallback оставляет только запасной набор (сервер недоступен).
func (v *Vocabulary) UseFallback() { v.Replace(nil) }

// Items возвращает копию всех значений.
func (v *Vocabulary) Items() []string { return slices.Clone(v.items) }

// Len - количество значений.
func (v *Vocabulary) Len() int { return len(v.items) }

// Quick возвращает первые n значений.
func (v *Vocabulary) Quick(n int) []string {
	if n > len(v.items) {
		n = len(v.items)
	}
	return slices.Clone(v.items[:n])
}

// Contains - точное совпадение.
func (v *Vocabulary) Contains(s string) bool {
	return slices.Contains(v.items, s)
}

// Add добавляет значение в конец, если его еще нет. Возвращает true, если словарь изменился.
func (v *Vocabulary) Add(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || v.Contains(s) {
		return false
	}
	v.items = append(v.items, s)
	return true
}

// Match возвращает значения, содержащие подстроку (без учета регистра).
// Пустой запрос возвращает быстрый выбор.
func (v *Vocabulary) Match(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return v.Quick(QuickPickSize)
	}
	var out []string
	for _, item := range v.items {
		if strings.Contains(strings.ToLower(item), query) {
			out = append(out, item)
		}
	}
	return out
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || slices.Contains(out, item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
