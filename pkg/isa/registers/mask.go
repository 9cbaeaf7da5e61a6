package registers

import "github.com/Manu343726/reggen/pkg/utils"

// Returns the mask of bank-local units occupied by the registers of a class.
// All the classes of a bank get masks of ceil(bank.Units / 32) words, with the bits
// past the last unit of the bank cleared
func buildUnitMask(bank *RegBank, rc *RegClass) utils.WordMask {
	mask := utils.NewWordMask(bank.Units)

	for _, start := range rc.Starts {
		mask.SetRange(start, rc.Width)
	}

	return mask
}

// Returns the mask of bank-local units where a register of the class starts
func buildStartMask(bank *RegBank, rc *RegClass) utils.WordMask {
	mask := utils.NewWordMask(bank.Units)

	for _, start := range rc.Starts {
		mask.Set(start)
	}

	return mask
}
