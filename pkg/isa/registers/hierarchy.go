package registers

import "github.com/Manu343726/reggen/pkg/utils"

// Returns whether b is a subclass of a.
//
// b is a subclass of a if both belong to the same bank, b's width is a multiple of a's
// width and every register of b is made of whole registers of a: b's units are a subset
// of a's units and every register of b starts where a register of a starts. Every class
// is a subclass of itself.
func IsSubclassOf(b *RegClass, a *RegClass) bool {
	if a.Bank != b.Bank {
		return false
	}

	if a.Width <= 0 || b.Width%a.Width != 0 {
		return false
	}

	return b.Mask.IsSubsetOf(a.Mask) && b.startMask.IsSubsetOf(a.startMask)
}

// Computes the subclass mask of every class of the ISA. Only classes of the same
// bank are compared, since classes of different banks are never related
func resolveSubclasses(info *RegInfo) {
	for _, rc := range info.Classes {
		rc.SubclassMask = utils.NewWordMask(len(info.Classes))
	}

	for _, bank := range info.Banks {
		classes := info.BankClasses(bank)

		for _, a := range classes {
			for _, b := range classes {
				if IsSubclassOf(b, a) {
					a.SubclassMask.Set(b.Index)
				}
			}
		}
	}
}
