package utils

import (
	"fmt"
	"sort"
	"strings"
)

// Named contiguous run of units within a diagram
type Span struct {
	// Name displayed inside the span box
	Name string

	// First unit covered by the span
	Begin int

	// Number of units covered by the span
	Width int
}

// The first unit past the end of the span
func (s Span) End() int {
	return s.Begin + s.Width
}

const unusedSpanName = "(unused)"

// Returns the spans sorted by position, with the holes between them filled with
// "(unused)" spans so the result covers [0, totalUnits). Overlapping spans are an error
func fillSpanGaps(spans []Span, totalUnits int) ([]Span, error) {
	sorted := append([]Span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })

	result := make([]Span, 0, len(sorted)+1)
	current := 0

	for _, span := range sorted {
		if span.Begin < current {
			return nil, fmt.Errorf("span '%v' [%v, %v) overlaps the previous span", span.Name, span.Begin, span.End())
		}

		if span.Begin > current {
			result = append(result, Span{Name: unusedSpanName, Begin: current, Width: span.Begin - current})
		}

		result = append(result, span)
		current = span.End()
	}

	if current < totalUnits {
		result = append(result, Span{Name: unusedSpanName, Begin: current, Width: totalUnits - current})
	}

	return result, nil
}

// Centers text within length characters using filler on both sides
func centered(text string, filler string, length int) string {
	if len(text) >= length {
		return text
	}

	left := (length - len(text)) / 2
	right := length - len(text) - left
	return strings.Repeat(filler, left) + text + strings.Repeat(filler, right)
}

// Draws an ascii diagram of a row of units split in named spans, units increasing left to right:
//
//	0        8                    32
//	+--------+--------------------+
//	|  GPR8  |      (unused)      |
//	+--------+--------------------+
//	 <- 8 -> <------- 24 -------->
//
// The first row shows the first unit of each span and the total number of units
func SpanDiagram(spans []Span, totalUnits int, leftpad int) (string, error) {
	allSpans, err := fillSpanGaps(spans, totalUnits)

	if err != nil {
		return "", err
	}

	if len(allSpans) == 0 {
		return "", nil
	}

	pad := strings.Repeat(" ", leftpad)
	var indices, border, body, widths strings.Builder

	for _, span := range allSpans {
		index := fmt.Sprint(span.Begin)
		name := " " + span.Name + " "
		width := fmt.Sprintf(" %v ", span.Width)
		length := Max([]int{len(index), len(name), len(width) + len("<-") + len("->")})

		indices.WriteString(index + strings.Repeat(" ", length+1-len(index)))
		border.WriteString("+" + strings.Repeat("-", length))
		body.WriteString("|" + centered(name, " ", length))
		widths.WriteString(" <-" + centered(width, "-", length-len("<-")-len("->")) + "->")
	}

	indices.WriteString(fmt.Sprint(allSpans[len(allSpans)-1].End()))
	border.WriteString("+")
	body.WriteString("|")

	var result strings.Builder

	for _, row := range []string{indices.String(), border.String(), body.String(), border.String(), widths.String()} {
		result.WriteString(pad)
		result.WriteString(row)
		result.WriteString("\n")
	}

	return result.String(), nil
}
