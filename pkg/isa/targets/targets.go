// Package targets contains the register declarations of the built-in target ISAs
package targets

import (
	"errors"
	"fmt"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/utils"
)

var ErrUnknownTarget = errors.New("unknown target ISA")

var builtins = map[string]func() *registers.Declaration{
	"arm32":     Arm32,
	"cucaracha": Cucaracha,
	"riscv32":   RiscV32,
	"virtual":   Virtual,
}

// Returns the names of all built-in targets in alphabetical order
func Names() []string {
	return utils.SortedKeys(builtins)
}

// Returns the declaration of a built-in target
func ByName(name string) (*registers.Declaration, error) {
	if factory, ok := builtins[name]; ok {
		return factory(), nil
	}

	return nil, utils.MakeError(ErrUnknownTarget, "'%v', supported targets: %v", name, utils.FormatSlice(Names(), ", "))
}

// Returns the declarations of all built-in targets, in Names() order
func All() []*registers.Declaration {
	return utils.Map(Names(), func(name string) *registers.Declaration { return builtins[name]() })
}

// Returns n unit names prefix0, prefix1, ...
func unitNames(prefix string, n int) []string {
	return utils.Iota(n, func(i int) string { return prefix + fmt.Sprint(i) })
}

// Cucaracha architecture registers: the CPU state registers and the general purpose integer registers
func Cucaracha() *registers.Declaration {
	return &registers.Declaration{
		Name: "cucaracha",
		Banks: []registers.BankDeclaration{
			{
				Name:   "StateRegisters",
				Prefix: "st",
				Units:  4,
				Names:  []string{"pc", "sp", "cpsr", "lr"},
				Classes: []registers.ClassDeclaration{
					registers.Units("ST", 0, 4).With(
						registers.Units("SP", 1, 1),
					),
				},
			},
			{
				Name:   "IntRegisters",
				Prefix: "r",
				Units:  10,
				Classes: []registers.ClassDeclaration{
					registers.Units("GPR", 0, 10).With(
						registers.Units("ArgRegs", 0, 4),
					),
				},
			},
		},
	}
}

// RISC-V RV32IF registers. GPR8 and FPR8 are the registers addressable by compressed instructions
func RiscV32() *registers.Declaration {
	return &registers.Declaration{
		Name: "riscv32",
		Banks: []registers.BankDeclaration{
			{
				Name:   "IntRegs",
				Prefix: "x",
				Units:  32,
				Classes: []registers.ClassDeclaration{
					registers.Units("GPR", 0, 32).With(
						registers.Units("GPR8", 8, 8),
					),
				},
			},
			{
				Name:   "FloatRegs",
				Prefix: "f",
				Units:  32,
				Classes: []registers.ClassDeclaration{
					registers.Units("FPR", 0, 32).With(
						registers.Units("FPR8", 8, 8),
					),
				},
			},
		},
	}
}

// 32-bit ARM registers. The floating point bank is made of 32 bit units: S registers cover
// the first 32 units, which are also addressed in pairs as D0-D15 and in quads as Q0-Q7.
// D16-D31 have no single precision aliases and form their own top-level class
func Arm32() *registers.Declaration {
	return &registers.Declaration{
		Name: "arm32",
		Banks: []registers.BankDeclaration{
			{
				Name:   "IntRegs",
				Prefix: "r",
				Units:  16,
				Names:  append(unitNames("r", 13), "sp", "lr", "pc"),
				Classes: []registers.ClassDeclaration{
					registers.Units("GPR", 0, 16),
				},
			},
			{
				Name:   "FloatRegs",
				Prefix: "s",
				Units:  64,
				Classes: []registers.ClassDeclaration{
					registers.Units("S", 0, 32).With(
						registers.Wide("D", "d", 2, 0, 16).With(
							registers.Wide("Q", "q", 4, 0, 8),
						),
					),
					registers.Wide("DH", "d", 2, 32, 16),
				},
			},
		},
	}
}

// Register-free target
func Virtual() *registers.Declaration {
	return &registers.Declaration{
		Name: "virtual",
	}
}
