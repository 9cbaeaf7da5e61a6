package registers

import (
	"errors"
	"fmt"

	"github.com/Manu343726/reggen/pkg/utils"
)

// Builds the frozen register descriptors of an ISA from its declaration.
//
// Returns the non-fatal warnings found (an ISA without banks is valid but reported) and,
// if the declaration is not valid, all the configuration errors joined. No RegInfo is
// returned in that case.
func Build(decl *Declaration) (*RegInfo, []Warning, error) {
	info := &RegInfo{Name: decl.Name}

	if len(decl.Banks) == 0 {
		return info, []Warning{{ISA: decl.Name, Err: ErrNoBanks}}, nil
	}

	b := builder{info: info, classNames: map[string]bool{}}
	bankNames := map[string]bool{}
	firstUnit := 0

	for i := range decl.Banks {
		bankDecl := &decl.Banks[i]

		if bankNames[bankDecl.Name] {
			b.fail(utils.MakeError(ErrDuplicateBank, "'%v'", bankDecl.Name))
			continue
		}

		bankNames[bankDecl.Name] = true

		if bank := b.addBank(bankDecl, firstUnit); bank != nil {
			firstUnit += bank.Units
		}
	}

	if len(b.errs) > 0 {
		return nil, nil, b.err()
	}

	for _, bank := range info.Banks {
		b.checkPartition(bank)
	}

	resolveSubclasses(info)

	for _, rc := range info.Classes {
		b.checkContainment(rc)
	}

	if err := info.Verify(); err != nil {
		b.fail(err)
	}

	if len(b.errs) > 0 {
		return nil, nil, b.err()
	}

	return info, nil, nil
}

type builder struct {
	info       *RegInfo
	classNames map[string]bool
	errs       []error
}

func (b *builder) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *builder) err() error {
	return fmt.Errorf("invalid register declaration of ISA '%v': %w", b.info.Name, errors.Join(b.errs...))
}

func (b *builder) addBank(decl *BankDeclaration, firstUnit int) *RegBank {
	if decl.Units <= 0 {
		b.fail(utils.MakeError(ErrInvalidUnits, "bank '%v' declares %v units", decl.Name, decl.Units))
		return nil
	}

	if len(decl.Names) > decl.Units {
		b.fail(utils.MakeError(ErrTooManyNames, "bank '%v' has %v units but %v names", decl.Name, decl.Units, len(decl.Names)))
		return nil
	}

	if len(decl.Classes) == 0 {
		b.fail(utils.MakeError(ErrNoTopClasses, "bank '%v'", decl.Name))
		return nil
	}

	bank := &RegBank{
		Name:          decl.Name,
		Index:         len(b.info.Banks),
		FirstUnit:     firstUnit,
		Units:         decl.Units,
		Prefix:        decl.Prefix,
		FirstTopClass: len(b.info.Classes),
		NumTopClasses: len(decl.Classes),
		Names: utils.Iota(decl.Units, func(unit int) string {
			if unit < len(decl.Names) {
				return decl.Names[unit]
			}

			return decl.Prefix + fmt.Sprint(unit)
		}),
	}

	b.info.Banks = append(b.info.Banks, bank)

	tops := make([]*RegClass, len(decl.Classes))

	for i := range decl.Classes {
		tops[i] = b.addClass(bank, &decl.Classes[i], -1, -1)
	}

	for i := range decl.Classes {
		if tops[i] != nil {
			b.addSubclasses(bank, decl.Classes[i].Subclasses, tops[i])
		}
	}

	return bank
}

// Adds nested classes in pre-order, so each class gets its index before its own subclasses
func (b *builder) addSubclasses(bank *RegBank, decls []ClassDeclaration, parent *RegClass) {
	for i := range decls {
		if rc := b.addClass(bank, &decls[i], parent.Index, parent.TopClass); rc != nil {
			b.addSubclasses(bank, decls[i].Subclasses, rc)
		}
	}
}

// Adds a class to the ISA. A negative top means the class is a top-level class.
// Top-level classes always get an index (even if invalid) so the bank's top-level range stays contiguous
func (b *builder) addClass(bank *RegBank, decl *ClassDeclaration, parent int, top int) *RegClass {
	rc := &RegClass{
		Name:     decl.Name,
		Index:    len(b.info.Classes),
		Bank:     bank.Index,
		TopClass: top,
		Prefix:   decl.Prefix,
		parent:   parent,
	}

	if top < 0 {
		rc.TopClass = rc.Index
	}

	if b.classNames[decl.Name] {
		b.fail(utils.MakeError(ErrDuplicateClass, "'%v' in bank '%v'", decl.Name, bank.Name))

		if !rc.IsTopLevel() {
			return nil
		}
	}

	b.classNames[decl.Name] = true

	starts, width, err := resolveStarts(bank, decl, rc.IsTopLevel())

	if err != nil {
		b.fail(err)

		if !rc.IsTopLevel() {
			return nil
		}
	}

	rc.Width = width
	rc.Starts = starts

	if len(starts) > 0 {
		rc.Start = starts[0]
	}

	rc.FirstAbsoluteUnit = bank.FirstUnit + rc.Start
	rc.Mask = buildUnitMask(bank, rc)
	rc.startMask = buildStartMask(bank, rc)

	b.info.Classes = append(b.info.Classes, rc)
	return rc
}

// Computes the bank-local register starts of a class declaration
func resolveStarts(bank *RegBank, decl *ClassDeclaration, topLevel bool) ([]int, int, error) {
	width := decl.Width

	if width == 0 {
		width = 1
	}

	if width < 0 {
		return nil, 0, utils.MakeError(ErrInvalidWidth, "class '%v' declares width %v", decl.Name, width)
	}

	var starts []int

	if decl.Starts != nil {
		starts = append([]int(nil), decl.Starts...)

		for i := 1; i < len(starts); i++ {
			if starts[i] <= starts[i-1] {
				return nil, width, utils.MakeError(ErrInvalidWidth, "starts of class '%v' must be in increasing order, got %v after %v", decl.Name, starts[i], starts[i-1])
			}

			if (starts[i]-starts[0])%width != 0 {
				return nil, width, utils.MakeError(ErrInvalidWidth, "register start %v of class '%v' is not aligned to width %v from its first start %v", starts[i], decl.Name, width, starts[0])
			}
		}
	} else {
		count := decl.Count

		if count == 0 && topLevel {
			span := bank.Units - decl.Start

			if span%width != 0 {
				return nil, width, utils.MakeError(ErrInvalidWidth, "class '%v' spans %v units from unit %v, which is not a multiple of its width %v", decl.Name, span, decl.Start, width)
			}

			count = span / width
		}

		if count < 0 {
			return nil, width, utils.MakeError(ErrEmptyClass, "class '%v' declares %v registers", decl.Name, count)
		}

		starts = utils.Iota(count, func(i int) int { return decl.Start + i*width })
	}

	if len(starts) == 0 {
		return nil, width, utils.MakeError(ErrEmptyClass, "'%v'", decl.Name)
	}

	if first, last := starts[0], starts[len(starts)-1]+width; first < 0 || last > bank.Units {
		return nil, width, utils.MakeError(ErrUnitOutOfRange, "class '%v' addresses units [%v, %v) but bank '%v' has units [0, %v)", decl.Name, first, last, bank.Name, bank.Units)
	}

	return starts, width, nil
}

// Checks the top-level classes of the bank are disjoint and cover all its units
func (b *builder) checkPartition(bank *RegBank) {
	tops := b.info.TopClasses(bank)
	covered := utils.NewWordMask(bank.Units)

	for i, rc := range tops {
		for _, other := range tops[i+1:] {
			if overlap := rc.Mask.And(other.Mask); !overlap.IsZero() {
				b.fail(utils.MakeError(ErrTopClassOverlap, "'%v' and '%v' of bank '%v' share units %v", rc.Name, other.Name, bank.Name, overlap.Bits()))
			}
		}

		covered = covered.Or(rc.Mask)
	}

	full := utils.FullWordMask(bank.Units)

	if !covered.Equal(full) {
		missing := utils.Filter(utils.Indices(bank.Units), func(unit int) bool { return !covered.Has(unit) })
		b.fail(utils.MakeError(ErrPartitionGap, "units %v of bank '%v' are not covered by any top-level class", missing, bank.Name))
	}
}

// Checks a nested class is a subclass of the class it was declared within
func (b *builder) checkContainment(rc *RegClass) {
	if rc.parent < 0 {
		return
	}

	parent := b.info.Classes[rc.parent]

	if !parent.HasSubclass(rc) {
		b.fail(utils.MakeError(ErrNotContained, "'%v' (width %v, units %v) is declared within '%v' (width %v, units %v)",
			rc.Name, rc.Width, rc.Mask.Bits(), parent.Name, parent.Width, parent.Mask.Bits()))
	}
}
