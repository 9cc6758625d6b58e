package overpass

import (
	"strconv"
	"strings"

	"github.com/places-finder/internal/domain"
)

const (
	// DefaultMargin - половина стороны области запроса в градусах
	DefaultMargin = 0.5

	// QueryTimeout - таймаут в заголовке запроса, секунды
	QueryTimeout = 25
)

// BuildBoundingBox строит область вокруг локации: margin в каждую сторону
func BuildBoundingBox(loc domain.Location, margin float64) domain.BoundingBox {
	return domain.BoundingBox{
		South: loc.Latitude - margin,
		West:  loc.Longitude - margin,
		North: loc.Latitude + margin,
		East:  loc.Longitude + margin,
	}
}

// BuildQuery собирает текст запроса Overpass QL: объединение узлов, у которых тег
// фильтра равен "yes" внутри области, плюс рекурсия по членам и компактный вывод.
// Лексемы и клаузы разделены одним пробелом.
// Текст зависит от порядка фильтров, семантика - нет.
func BuildQuery(filters domain.FilterSet, box domain.BoundingBox) string {
	bbox := formatBox(box)

	var b strings.Builder
	b.WriteString("[out:json][timeout:")
	b.WriteString(strconv.Itoa(QueryTimeout))
	b.WriteString("]; ( ")
	for _, f := range filters.Filters() {
		b.WriteString(`node ["`)
		b.WriteString(f.String())
		b.WriteString(`"="yes"] (`)
		b.WriteString(bbox)
		b.WriteString("); ")
	}
	b.WriteString("); out; >; out skel qt;")

	return b.String()
}

func formatBox(box domain.BoundingBox) string {
	return strings.Join([]string{
		formatCoord(box.South),
		formatCoord(box.West),
		formatCoord(box.North),
		formatCoord(box.East),
	}, ",")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
