package tools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/isa/targets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	topRCColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
)

// Writes the register classes of an ISA as a table followed by the diagram of each bank
func showRegInfo(w io.Writer, info *registers.RegInfo, warnings []registers.Warning) error {
	for _, warning := range warnings {
		warningColor.Fprintf(w, "warning: %v\n", warning)
	}

	headerColor.Fprintf(w, "%-5v %-10v %-6v %-12v %-10v %-6v %-12v %v\n", "index", "class", "width", "bank", "toprc", "first", "subclasses", "mask")

	for _, rc := range info.Classes {
		line := fmt.Sprintf("%-5v %-10v %-6v %-12v %-10v %-6v %-12v %v\n",
			rc.Index, rc.Name, rc.Width, info.BankOf(rc).Name, info.Classes[rc.TopClass].Name,
			rc.FirstAbsoluteUnit, rc.SubclassMask.Hex(), strings.Join(rc.Mask.HexWords(), " "))

		if rc.IsTopLevel() {
			topRCColor.Fprint(w, line)
		} else {
			fmt.Fprint(w, line)
		}
	}

	diagram, err := registers.Diagram(info)

	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, diagram)
	return nil
}

var showCmd = &cobra.Command{
	Use:       "show target",
	Short:     "Show the register classes of a built-in target",
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: targets.Names(),
	Run: func(cmd *cobra.Command, args []string) {
		decl, err := targets.ByName(args[0])

		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		info, warnings, err := registers.Build(decl)

		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if err := showRegInfo(cmd.OutOrStdout(), info, warnings); err != nil {
			fmt.Fprintln(os.Stderr, "Error drawing banks:", err)
			os.Exit(2)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%v classes, %v units\n", len(info.Classes), info.TotalUnits())
	},
}
