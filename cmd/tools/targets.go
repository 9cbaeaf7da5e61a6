package tools

import (
	"fmt"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/isa/targets"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the built-in target ISAs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, decl := range targets.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12v %v banks, %v classes\n", decl.Name, len(decl.Banks), countClasses(decl))
		}
	},
}

func countClasses(decl *registers.Declaration) int {
	var count func(classes []registers.ClassDeclaration) int

	count = func(classes []registers.ClassDeclaration) int {
		total := len(classes)

		for _, class := range classes {
			total += count(class.Subclasses)
		}

		return total
	}

	total := 0

	for _, bank := range decl.Banks {
		total += count(bank.Classes)
	}

	return total
}
