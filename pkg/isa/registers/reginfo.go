// Package registers models the physical register resources of a target ISA.
//
// An ISA declaration (see Declaration) lists register banks, each one a contiguous
// range of register units split by a set of disjoint top-level register classes,
// which in turn may contain nested classes. Build() turns a declaration into a
// frozen RegInfo where:
//
//   - Every register class has a dense ISA-global index, assigned bank by bank,
//     top-level classes first and then nested classes in declaration order.
//   - Every class has a unit mask marking the bank-local units its registers occupy.
//   - Every class has a subclass mask marking the indices of all its subclasses,
//     itself included.
//
// Classes and banks reference each other only by index, so a RegInfo maps directly to
// the flat static tables consumed by the register allocator.
package registers

import (
	"fmt"

	"github.com/Manu343726/reggen/pkg/utils"
)

// A named contiguous range of units in the flat unit space of an ISA
type RegBank struct {
	Name string

	// Position of the bank in RegInfo.Banks
	Index int

	// Offset of the first unit of the bank in the ISA unit space
	FirstUnit int

	// Number of units of the bank
	Units int

	// Display name of each unit, len(Names) == Units
	Names []string

	Prefix string

	// Index of the first top-level class of the bank
	FirstTopClass int

	// Number of top-level classes of the bank. Top-level classes have consecutive indices
	NumTopClasses int
}

// Returns whether an absolute unit belongs to the bank
func (b *RegBank) ContainsUnit(unit int) bool {
	return unit >= b.FirstUnit && unit < b.FirstUnit+b.Units
}

// Returns the display name of an absolute unit
func (b *RegBank) UnitName(unit int) (string, error) {
	if !b.ContainsUnit(unit) {
		return "", utils.MakeError(ErrUnitOutOfRange, "unit %v is not part of bank '%v' [%v, %v)", unit, b.Name, b.FirstUnit, b.FirstUnit+b.Units)
	}

	return b.Names[unit-b.FirstUnit], nil
}

// Returns the index range of the top-level classes of the bank
func (b *RegBank) TopClassIndices() []int {
	return utils.Iota(b.NumTopClasses, func(i int) int { return b.FirstTopClass + i })
}

// A set of registers of the same width within a register bank
type RegClass struct {
	Name string

	// ISA-global index of the class
	Index int

	// Units per register
	Width int

	// Index of the owning bank
	Bank int

	// Index of the top-level class this class is nested within. Top-level classes are their own top class
	TopClass int

	// Bank-local unit of the first register of the class
	Start int

	// Bank-local first unit of each register of the class, in increasing order
	Starts []int

	// Bank.FirstUnit + Start
	FirstAbsoluteUnit int

	Prefix string

	// Bit i set if the class with index i is a subclass of this class
	SubclassMask utils.WordMask

	// Bit i set if the bank-local unit i is occupied by a register of the class
	Mask utils.WordMask

	// Bit i set if a register of the class starts at bank-local unit i
	startMask utils.WordMask

	// Index of the class this one was declared within, -1 for top-level classes
	parent int
}

// Returns whether the class is a top-level class of its bank
func (rc *RegClass) IsTopLevel() bool {
	return rc.TopClass == rc.Index
}

// Returns the number of registers in the class
func (rc *RegClass) NumRegisters() int {
	return len(rc.Starts)
}

// Returns whether other is a subclass of rc, as recorded by the subclass mask
func (rc *RegClass) HasSubclass(other *RegClass) bool {
	return rc.SubclassMask.Has(other.Index)
}

// Returns whether the bank-local unit is occupied by some register of the class
func (rc *RegClass) ContainsUnit(unit int) bool {
	return rc.Mask.Has(unit)
}

// Returns whether some register of the class starts at the given bank-local unit
func (rc *RegClass) IsRegisterStart(unit int) bool {
	return rc.startMask.Has(unit)
}

// Register class and bank descriptors of one ISA
type RegInfo struct {
	// Name of the ISA
	Name string

	Banks []*RegBank

	// All register classes of the ISA, Classes[i].Index == i
	Classes []*RegClass
}

// Returns a register class by index
func (info *RegInfo) Class(index int) (*RegClass, error) {
	if index < 0 || index >= len(info.Classes) {
		return nil, utils.MakeError(ErrUnknownClass, "no class with index %v in ISA '%v', it has %v classes", index, info.Name, len(info.Classes))
	}

	return info.Classes[index], nil
}

// Returns a register class by name
func (info *RegInfo) ClassByName(name string) (*RegClass, error) {
	for _, rc := range info.Classes {
		if rc.Name == name {
			return rc, nil
		}
	}

	return nil, utils.MakeError(ErrUnknownClass, "'%v' in ISA '%v'", name, info.Name)
}

// Returns the bank owning a register class
func (info *RegInfo) BankOf(rc *RegClass) *RegBank {
	return info.Banks[rc.Bank]
}

// Returns the top-level classes of a bank
func (info *RegInfo) TopClasses(bank *RegBank) []*RegClass {
	return info.Classes[bank.FirstTopClass : bank.FirstTopClass+bank.NumTopClasses]
}

// Returns all the classes of a bank, in index order
func (info *RegInfo) BankClasses(bank *RegBank) []*RegClass {
	return utils.Filter(info.Classes, func(rc *RegClass) bool { return rc.Bank == bank.Index })
}

// Returns the subclasses of a class (itself included) in index order
func (info *RegInfo) Subclasses(rc *RegClass) []*RegClass {
	return utils.Map(rc.SubclassMask.Bits(), func(index int) *RegClass { return info.Classes[index] })
}

// Returns the display name of the i-th register of a class
func (info *RegInfo) RegisterName(rc *RegClass, i int) (string, error) {
	if i < 0 || i >= rc.NumRegisters() {
		return "", utils.MakeError(ErrUnitOutOfRange, "register %v of class '%v', the class has only %v registers", i, rc.Name, rc.NumRegisters())
	}

	if len(rc.Prefix) > 0 {
		return rc.Prefix + fmt.Sprint(rc.Starts[i]/rc.Width), nil
	}

	return info.BankOf(rc).Names[rc.Starts[i]], nil
}

// Returns the total number of units of the ISA
func (info *RegInfo) TotalUnits() int {
	return utils.Accumulate(info.Banks, func(bank *RegBank) int { return bank.Units })
}

// Checks the index invariants the generated tables rely on: class indices are dense and
// unique, and every bank's top-level classes form a contiguous index range
func (info *RegInfo) Verify() error {
	for i, rc := range info.Classes {
		if rc.Index != i {
			return utils.MakeError(ErrIndexCollision, "class '%v' has index %v but is stored at position %v", rc.Name, rc.Index, i)
		}
	}

	for _, bank := range info.Banks {
		for _, index := range bank.TopClassIndices() {
			rc, err := info.Class(index)

			if err != nil {
				return err
			}

			if rc.Bank != bank.Index || !rc.IsTopLevel() {
				return utils.MakeError(ErrIndexCollision, "class '%v' with index %v is in the top-level range of bank '%v' but is not one of its top-level classes", rc.Name, index, bank.Name)
			}
		}
	}

	return nil
}
