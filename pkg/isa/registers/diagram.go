package registers

import (
	"strings"

	"github.com/Manu343726/reggen/pkg/utils"
)

// Returns the contiguous runs of units occupied by a class, as diagram spans named after the class
func classSpans(rc *RegClass) []utils.Span {
	spans := []utils.Span{}

	for _, unit := range rc.Mask.Bits() {
		if last := len(spans) - 1; last >= 0 && spans[last].End() == unit {
			spans[last].Width++
		} else {
			spans = append(spans, utils.Span{Name: rc.Name, Begin: unit, Width: 1})
		}
	}

	return spans
}

// Draws an ascii diagram of the bank-local units occupied by a class
func ClassDiagram(info *RegInfo, rc *RegClass, leftpad int) (string, error) {
	return utils.SpanDiagram(classSpans(rc), info.BankOf(rc).Units, leftpad)
}

// Draws an ascii diagram of how the top-level classes of a bank partition its units
func BankDiagram(info *RegInfo, bank *RegBank, leftpad int) (string, error) {
	spans := []utils.Span{}

	for _, rc := range info.TopClasses(bank) {
		spans = append(spans, classSpans(rc)...)
	}

	return utils.SpanDiagram(spans, bank.Units, leftpad)
}

// Draws the diagram of every bank of the ISA, each one preceded by its name
func Diagram(info *RegInfo) (string, error) {
	var builder strings.Builder

	for _, bank := range info.Banks {
		diagram, err := BankDiagram(info, bank, 2)

		if err != nil {
			return "", err
		}

		builder.WriteString(bank.Name)
		builder.WriteString(":\n")
		builder.WriteString(diagram)
	}

	return builder.String(), nil
}
