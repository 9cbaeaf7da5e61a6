// Package regtables defines the static register tables of an ISA, as emitted by the
// generator and consumed read-only by the register allocator.
//
// Tables never reference each other by pointer: banks and classes are stored in flat
// arrays and cross-referenced by index, so generated tables are plain composite literals.
package regtables

import (
	"fmt"
	"strconv"

	"github.com/Manu343726/reggen/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Bitset packed in 32 bit words, bit i of word w represents element 32*w + i
type Words []uint32

// Returns whether bit i is set
func (w Words) Has(i int) bool {
	return utils.WordMask(w).Has(i)
}

// Returns whether the bitsets share some set bit
func (w Words) Intersects(other Words) bool {
	return !utils.WordMask(w).And(utils.WordMask(other)).IsZero()
}

// Encodes the words as 0x%08x hex strings
func (w Words) MarshalYAML() (any, error) {
	return utils.WordMask(w).HexWords(), nil
}

func (w *Words) UnmarshalYAML(value *yaml.Node) error {
	var literals []string

	if err := value.Decode(&literals); err != nil {
		return err
	}

	words := make(Words, len(literals))

	for i, literal := range literals {
		word, err := strconv.ParseUint(literal, 0, 32)

		if err != nil {
			return fmt.Errorf("line %v: invalid mask word '%v': %w", value.Line, literal, err)
		}

		words[i] = uint32(word)
	}

	*w = words
	return nil
}

// Register bank descriptor
type Bank struct {
	Name          string   `yaml:"name"`
	FirstUnit     int      `yaml:"first_unit"`
	Units         int      `yaml:"units"`
	Names         []string `yaml:"names"`
	Prefix        string   `yaml:"prefix"`
	FirstTopClass int      `yaml:"first_toprc"`
	NumTopClasses int      `yaml:"num_toprcs"`
}

// Register class descriptor
type Class struct {
	Name  string `yaml:"name"`
	Index int    `yaml:"index"`
	Width int    `yaml:"width"`

	// Index of the owning bank
	Bank int `yaml:"bank"`

	// Index of the top-level class
	TopClass int `yaml:"toprc"`

	// Absolute unit of the first register of the class
	First int `yaml:"first"`

	// Indices of the subclasses of this class, itself included
	Subclasses Words `yaml:"subclasses"`

	// Bank-local units occupied by the class
	Mask Words `yaml:"mask"`
}

// Returns whether other is a subclass of c
func (c *Class) HasSubclass(other *Class) bool {
	return c.Subclasses.Has(other.Index)
}

// Returns whether a bank-local unit is occupied by a register of the class
func (c *Class) ContainsUnit(unit int) bool {
	return c.Mask.Has(unit)
}

// Returns whether some register of c shares a unit with some register of other.
// Classes of different banks never interfere
func (c *Class) Interferes(other *Class) bool {
	return c.Bank == other.Bank && c.Mask.Intersects(other.Mask)
}

// Register tables of one ISA
type Info struct {
	ISA     string  `yaml:"isa"`
	Banks   []Bank  `yaml:"banks"`
	Classes []Class `yaml:"classes"`
}

// Returns the top-level classes of a bank
func (info *Info) TopClasses(bank *Bank) []Class {
	return info.Classes[bank.FirstTopClass : bank.FirstTopClass+bank.NumTopClasses]
}

// Returns the bank of a class
func (info *Info) BankOf(c *Class) *Bank {
	return &info.Banks[c.Bank]
}

// Returns a class by name
func (info *Info) ClassByName(name string) (*Class, bool) {
	for i := range info.Classes {
		if info.Classes[i].Name == name {
			return &info.Classes[i], true
		}
	}

	return nil, false
}
