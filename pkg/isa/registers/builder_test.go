package registers

import (
	"testing"

	"github.com/Manu343726/reggen/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleBank(bank BankDeclaration) *Declaration {
	return &Declaration{
		Name:  "test",
		Banks: []BankDeclaration{bank},
	}
}

func mustBuild(t *testing.T, decl *Declaration) *RegInfo {
	info, warnings, err := Build(decl)

	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotNil(t, info)
	return info
}

func mustClass(t *testing.T, info *RegInfo, name string) *RegClass {
	rc, err := info.ClassByName(name)
	require.NoError(t, err)
	return rc
}

func TestBuild_GPRWithNestedGPR8(t *testing.T) {
	info := mustBuild(t, singleBank(BankDeclaration{
		Name:   "IntRegs",
		Prefix: "u",
		Units:  32,
		Classes: []ClassDeclaration{
			Units("GPR", 0, 32).With(Units("GPR8", 0, 8)),
		},
	}))

	gpr := mustClass(t, info, "GPR")
	gpr8 := mustClass(t, info, "GPR8")

	assert.Equal(t, 0, gpr.Index)
	assert.Equal(t, 1, gpr8.Index)
	assert.Equal(t, gpr.Index, gpr8.TopClass)
	assert.True(t, gpr.IsTopLevel())
	assert.False(t, gpr8.IsTopLevel())

	assert.True(t, gpr8.HasSubclass(gpr8))
	assert.False(t, gpr8.HasSubclass(gpr))
	assert.True(t, gpr.HasSubclass(gpr))
	assert.True(t, gpr.HasSubclass(gpr8))
	assert.Equal(t, "0x3", gpr.SubclassMask.Hex())
	assert.Equal(t, "0x2", gpr8.SubclassMask.Hex())

	assert.Equal(t, utils.WordMask{0x000000ff}, gpr8.Mask)
	assert.Equal(t, utils.WordMask{0xffffffff}, gpr.Mask)

	bank := info.BankOf(gpr)
	assert.Equal(t, 0, bank.FirstTopClass)
	assert.Equal(t, 1, bank.NumTopClasses)
	assert.Equal(t, "u0", bank.Names[0])
	assert.Equal(t, "u31", bank.Names[31])
}

func TestBuild_EvenStartPairs(t *testing.T) {
	info := mustBuild(t, singleBank(BankDeclaration{
		Name:   "FloatRegs",
		Prefix: "f",
		Units:  16,
		Classes: []ClassDeclaration{
			Units("F", 0, 16).With(Wide("PAIR", "p", 2, 0, 8)),
		},
	}))

	f := mustClass(t, info, "F")
	pair := mustClass(t, info, "PAIR")

	assert.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14}, pair.Starts)
	assert.Equal(t, 8, pair.NumRegisters())
	assert.Equal(t, 16, pair.Mask.Count())
	assert.Equal(t, utils.WordMask{0x0000ffff}, pair.Mask)

	for unit := 0; unit < 16; unit++ {
		assert.Equal(t, unit%2 == 0, pair.IsRegisterStart(unit), "unit %v", unit)
		assert.True(t, pair.ContainsUnit(unit))
	}

	assert.True(t, f.HasSubclass(pair))
	assert.False(t, pair.HasSubclass(f))

	name, err := info.RegisterName(pair, 3)
	require.NoError(t, err)
	assert.Equal(t, "p3", name)

	name, err = info.RegisterName(f, 3)
	require.NoError(t, err)
	assert.Equal(t, "f3", name)

	_, err = info.RegisterName(pair, 8)
	assert.ErrorIs(t, err, ErrUnitOutOfRange)
}

func TestBuild_NoBanksIsAWarning(t *testing.T) {
	info, warnings, err := Build(&Declaration{Name: "empty"})

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Empty(t, info.Banks)
	assert.Empty(t, info.Classes)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0].Err, ErrNoBanks)
	assert.Equal(t, "empty", warnings[0].ISA)
	assert.Contains(t, warnings[0].String(), "empty")
}

func TestBuild_IndicesAssignedBankByBankTopClassesFirst(t *testing.T) {
	info := mustBuild(t, &Declaration{
		Name: "test",
		Banks: []BankDeclaration{
			{
				Name:  "A",
				Units: 8,
				Classes: []ClassDeclaration{
					Units("A0", 0, 4).With(Units("A0Low", 0, 2).With(Units("A0First", 0, 1))),
					Units("A1", 4, 4).With(Units("A1Low", 4, 2)),
				},
			},
			{
				Name:  "B",
				Units: 4,
				Classes: []ClassDeclaration{
					Units("B0", 0, 0),
				},
			},
		},
	})

	names := utils.Map(info.Classes, func(rc *RegClass) string { return rc.Name })
	assert.Equal(t, []string{"A0", "A1", "A0Low", "A0First", "A1Low", "B0"}, names)

	a, b := info.Banks[0], info.Banks[1]
	assert.Equal(t, 0, a.FirstUnit)
	assert.Equal(t, 8, b.FirstUnit)
	assert.Equal(t, []int{0, 1}, a.TopClassIndices())
	assert.Equal(t, []int{5}, b.TopClassIndices())
	assert.Equal(t, 12, info.TotalUnits())

	a1Low := mustClass(t, info, "A1Low")
	assert.Equal(t, 1, a1Low.TopClass)
	assert.Equal(t, 4, a1Low.FirstAbsoluteUnit)

	a0First := mustClass(t, info, "A0First")
	assert.Equal(t, 0, a0First.TopClass)

	b0 := mustClass(t, info, "B0")
	assert.Equal(t, 4, b0.NumRegisters())
	assert.Equal(t, 8, b0.FirstAbsoluteUnit)
	assert.Equal(t, []*RegClass{b0}, info.BankClasses(b))

	require.NoError(t, info.Verify())
}

func TestBuild_ExplicitStarts(t *testing.T) {
	info := mustBuild(t, singleBank(BankDeclaration{
		Name:  "R",
		Units: 40,
		Classes: []ClassDeclaration{
			Units("R", 0, 40).With(ClassDeclaration{Name: "Odd", Width: 2, Starts: []int{2, 6, 34}}),
		},
	}))

	odd := mustClass(t, info, "Odd")
	assert.Equal(t, 2, odd.Start)
	assert.Equal(t, 2, odd.FirstAbsoluteUnit)
	assert.Equal(t, utils.WordMask{0x000000cc, 0x0000000c}, odd.Mask)
	assert.Equal(t, utils.WordMask{0xffffffff, 0x000000ff}, mustClass(t, info, "R").Mask)
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name     string
		decl     *Declaration
		expected error
	}{
		{
			name:     "bank without top-level classes",
			decl:     singleBank(BankDeclaration{Name: "R", Units: 8}),
			expected: ErrNoTopClasses,
		},
		{
			name:     "bank without units",
			decl:     singleBank(BankDeclaration{Name: "R", Classes: []ClassDeclaration{Units("R", 0, 1)}}),
			expected: ErrInvalidUnits,
		},
		{
			name: "too many names",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 1, Names: []string{"a", "b"},
				Classes: []ClassDeclaration{Units("R", 0, 1)},
			}),
			expected: ErrTooManyNames,
		},
		{
			name: "duplicate bank",
			decl: &Declaration{Name: "test", Banks: []BankDeclaration{
				{Name: "R", Units: 1, Classes: []ClassDeclaration{Units("R1", 0, 1)}},
				{Name: "R", Units: 1, Classes: []ClassDeclaration{Units("R2", 0, 1)}},
			}},
			expected: ErrDuplicateBank,
		},
		{
			name: "duplicate class across banks",
			decl: &Declaration{Name: "test", Banks: []BankDeclaration{
				{Name: "A", Units: 1, Classes: []ClassDeclaration{Units("R", 0, 1)}},
				{Name: "B", Units: 1, Classes: []ClassDeclaration{Units("R", 0, 1)}},
			}},
			expected: ErrDuplicateClass,
		},
		{
			name: "class out of bank range",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("R", 0, 8).With(Units("Sub", 4, 8))},
			}),
			expected: ErrUnitOutOfRange,
		},
		{
			name: "negative start",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("R", 0, 8).With(Units("Sub", -1, 2))},
			}),
			expected: ErrUnitOutOfRange,
		},
		{
			name: "width does not divide top-level class span",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 7,
				Classes: []ClassDeclaration{{Name: "R", Width: 2}},
			}),
			expected: ErrInvalidWidth,
		},
		{
			name: "negative width",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{{Name: "R", Width: -1}},
			}),
			expected: ErrInvalidWidth,
		},
		{
			name: "misaligned explicit starts",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("R", 0, 8).With(ClassDeclaration{Name: "Sub", Width: 2, Starts: []int{0, 3}})},
			}),
			expected: ErrInvalidWidth,
		},
		{
			name: "unsorted explicit starts",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("R", 0, 8).With(ClassDeclaration{Name: "Sub", Starts: []int{4, 2}})},
			}),
			expected: ErrInvalidWidth,
		},
		{
			name: "empty nested class",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("R", 0, 8).With(ClassDeclaration{Name: "Sub"})},
			}),
			expected: ErrEmptyClass,
		},
		{
			name: "overlapping top-level classes",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("A", 0, 6), Units("B", 4, 4)},
			}),
			expected: ErrTopClassOverlap,
		},
		{
			name: "top-level classes leaving units uncovered",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("A", 0, 4), Units("B", 6, 2)},
			}),
			expected: ErrPartitionGap,
		},
		{
			name: "nested class outside its parent",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Units("A", 0, 4).With(Units("Sub", 4, 2)), Units("B", 4, 4)},
			}),
			expected: ErrNotContained,
		},
		{
			name: "nested class narrower than its parent",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Wide("D", "d", 2, 0, 4).With(Units("S", 0, 4))},
			}),
			expected: ErrNotContained,
		},
		{
			name: "nested wide class straddling parent registers",
			decl: singleBank(BankDeclaration{
				Name: "R", Units: 8,
				Classes: []ClassDeclaration{Wide("D", "d", 2, 0, 4).With(Wide("Q", "q", 4, 1, 1))},
			}),
			expected: ErrNotContained,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			info, _, err := Build(c.decl)

			assert.Nil(t, info)
			require.Error(t, err)
			assert.ErrorIs(t, err, c.expected)
			assert.Contains(t, err.Error(), "'test'")
		})
	}
}

func TestBuild_ReportsAllErrorsOfTheISA(t *testing.T) {
	_, _, err := Build(&Declaration{Name: "test", Banks: []BankDeclaration{
		{Name: "A", Units: 4},
		{Name: "B", Units: 4, Classes: []ClassDeclaration{Units("B", 0, 8)}},
	}})

	assert.ErrorIs(t, err, ErrNoTopClasses)
	assert.ErrorIs(t, err, ErrUnitOutOfRange)
}

func TestRegInfo_Lookups(t *testing.T) {
	info := mustBuild(t, singleBank(BankDeclaration{
		Name:  "R",
		Units: 4,
		Names: []string{"zero", "ra"},
		Classes: []ClassDeclaration{
			Units("R", 0, 4),
		},
	}))

	rc, err := info.Class(0)
	require.NoError(t, err)
	assert.Equal(t, "R", rc.Name)

	_, err = info.Class(1)
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = info.ClassByName("X")
	assert.ErrorIs(t, err, ErrUnknownClass)

	bank := info.Banks[0]
	assert.Equal(t, []string{"zero", "ra", "2", "3"}, bank.Names)

	name, err := bank.UnitName(1)
	require.NoError(t, err)
	assert.Equal(t, "ra", name)

	_, err = bank.UnitName(4)
	assert.ErrorIs(t, err, ErrUnitOutOfRange)

	assert.Equal(t, []*RegClass{rc}, info.Subclasses(rc))
}

func TestRegInfo_VerifyDetectsIndexCollisions(t *testing.T) {
	info := mustBuild(t, singleBank(BankDeclaration{
		Name:    "R",
		Units:   4,
		Classes: []ClassDeclaration{Units("R", 0, 4).With(Units("Sub", 0, 2))},
	}))

	info.Classes[1].Index = 0
	assert.ErrorIs(t, info.Verify(), ErrIndexCollision)
}
