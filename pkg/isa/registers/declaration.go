package registers

// Declaration of a register class.
//
// A class addresses either Count registers starting at the bank-local unit Start
// at stride Width, or the explicit ascending list of register start units Starts.
type ClassDeclaration struct {
	Name string `yaml:"name"`

	// Units per register. Zero means 1
	Width int `yaml:"width,omitempty"`

	// First bank-local unit addressed by the class
	Start int `yaml:"start,omitempty"`

	// Number of registers. A top-level class with no Count nor Starts covers the rest of the bank from Start
	Count int `yaml:"count,omitempty"`

	// Explicit bank-local register start units, overrides Start and Count
	Starts []int `yaml:"starts,omitempty"`

	// Prefix used to name the registers of the class ("d" names the width 2 registers d0, d1, ...).
	// If empty, registers take the name of their first unit
	Prefix string `yaml:"prefix,omitempty"`

	// Classes nested within this one
	Subclasses []ClassDeclaration `yaml:"subclasses,omitempty"`
}

// Declaration of a register bank
type BankDeclaration struct {
	Name string `yaml:"name"`

	// Prefix used to synthesize the names of the units not listed in Names
	Prefix string `yaml:"prefix"`

	// Number of units in the bank
	Units int `yaml:"units"`

	// Display names of the first units of the bank
	Names []string `yaml:"names,omitempty"`

	// Top-level classes partitioning the bank, with their nested classes
	Classes []ClassDeclaration `yaml:"classes"`
}

// Register declaration of one target ISA
type Declaration struct {
	Name  string            `yaml:"name"`
	Banks []BankDeclaration `yaml:"banks"`
}

// Returns a copy of a class declaration with the given nested classes
func (d ClassDeclaration) With(subclasses ...ClassDeclaration) ClassDeclaration {
	d.Subclasses = append(append([]ClassDeclaration(nil), d.Subclasses...), subclasses...)
	return d
}

// Declares a width 1 class addressing count units from start
func Units(name string, start int, count int) ClassDeclaration {
	return ClassDeclaration{
		Name:  name,
		Width: 1,
		Start: start,
		Count: count,
	}
}

// Declares a class of count registers of width units each, the first one starting at unit start
func Wide(name string, prefix string, width int, start int, count int) ClassDeclaration {
	return ClassDeclaration{
		Name:   name,
		Prefix: prefix,
		Width:  width,
		Start:  start,
		Count:  count,
	}
}
