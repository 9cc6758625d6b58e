package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	filterNamespaceRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	filterValueRe     = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)
)

// Filter - тег OSM вида "namespace:value", например "diet:vegan".
// Узел подходит, если значение этого тега равно "yes".
type Filter string

// ParseFilter валидирует токен фильтра
func ParseFilter(s string) (Filter, error) {
	namespace, value, ok := strings.Cut(s, ":")
	if !ok {
		return "", fmt.Errorf("filter %q: missing ':' separator", s)
	}
	if !filterNamespaceRe.MatchString(namespace) {
		return "", fmt.Errorf("filter %q: invalid namespace %q", s, namespace)
	}
	if !filterValueRe.MatchString(value) {
		return "", fmt.Errorf("filter %q: invalid value %q", s, value)
	}
	return Filter(s), nil
}

func (f Filter) Namespace() string {
	ns, _, _ := strings.Cut(string(f), ":")
	return ns
}

func (f Filter) Value() string {
	_, v, _ := strings.Cut(string(f), ":")
	return v
}

func (f Filter) String() string {
	return string(f)
}

// FilterSet - упорядоченное множество фильтров без повторов.
// Значение неизменяемое: операции возвращают новый набор.
type FilterSet struct {
	items []Filter
}

// NewFilterSet собирает набор, сохраняя порядок первого вхождения
func NewFilterSet(filters ...Filter) FilterSet {
	items := make([]Filter, 0, len(filters))
	seen := make(map[Filter]struct{}, len(filters))
	for _, f := range filters {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		items = append(items, f)
	}
	return FilterSet{items: items}
}

// ParseFilterSet валидирует все токены; первый невалидный токен отклоняет весь набор
func ParseFilterSet(tokens []string) (FilterSet, error) {
	filters := make([]Filter, 0, len(tokens))
	for _, token := range tokens {
		f, err := ParseFilter(token)
		if err != nil {
			return FilterSet{}, err
		}
		filters = append(filters, f)
	}
	return NewFilterSet(filters...), nil
}

// DefaultFilterSet - набор по умолчанию, если сохраненного нет или он поврежден
func DefaultFilterSet() FilterSet {
	return NewFilterSet("diet:gluten_free", "diet:vegan")
}

func (s FilterSet) Len() int {
	return len(s.items)
}

func (s FilterSet) Filters() []Filter {
	out := make([]Filter, len(s.items))
	copy(out, s.items)
	return out
}

func (s FilterSet) Strings() []string {
	out := make([]string, len(s.items))
	for i, f := range s.items {
		out[i] = string(f)
	}
	return out
}

func (s FilterSet) Contains(f Filter) bool {
	for _, item := range s.items {
		if item == f {
			return true
		}
	}
	return false
}

// With добавляет фильтр в конец, если его еще нет
func (s FilterSet) With(f Filter) FilterSet {
	if s.Contains(f) {
		return s
	}
	return NewFilterSet(append(s.Filters(), f)...)
}

func (s FilterSet) Without(f Filter) FilterSet {
	items := make([]Filter, 0, len(s.items))
	for _, item := range s.items {
		if item != f {
			items = append(items, item)
		}
	}
	return FilterSet{items: items}
}
