package gen

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Manu343726/reggen/cmd/config"
	"github.com/Manu343726/reggen/pkg/isa/emit"
	"github.com/Manu343726/reggen/pkg/isa/generate"
	"github.com/Manu343726/reggen/pkg/isa/targets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var warningColor = color.New(color.FgYellow, color.Bold)
var errorColor = color.New(color.FgRed, color.Bold)

// Returns the emitter for the configured output format
func newEmitter(settings *config.Settings, logger *slog.Logger) (emit.Emitter, error) {
	switch settings.Format {
	case config.FormatYaml:
		return emit.NewYamlEmitter(settings.OutputDir, logger), nil
	default:
		return emit.NewGoEmitter(settings.OutputDir, settings.Package, logger)
	}
}

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [targets...]",
	Short: "Generate the register tables of target ISAs",
	Long: `Builds the register banks and classes of each requested ISA and writes its static register
tables to the output directory, one file per ISA.

ISAs are taken from the built-in targets given as arguments and from the declaration files
(--declarations). If neither is given, all built-in targets are generated.

An invalid ISA declaration is reported and skipped without affecting the other ISAs.
ISAs without register banks are generated with empty tables and reported as a warning.`,
	ValidArgs: targets.Names(),
	Args:      cobra.OnlyValidArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load()

		if err != nil {
			errorColor.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		logger, closer, err := settings.Logger(os.Stderr)

		if err != nil {
			errorColor.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		defer closer.Close()

		isas, err := settings.ISAs(args)

		if err != nil {
			errorColor.Fprintf(os.Stderr, "error loading ISA declarations: %v\n", err)
			os.Exit(1)
		}

		emitter, err := newEmitter(&settings, logger)

		if err != nil {
			errorColor.Fprintf(os.Stderr, "error initializing %v emitter: %v\n", settings.Format, err)
			os.Exit(1)
		}

		g := generate.NewGenerator(emitter, generate.Options{
			Parallel: settings.Parallel,
			Jobs:     settings.Jobs,
			Logger:   logger,
		})

		results, err := g.Run(cmd.Context(), isas)

		for _, warning := range generate.Warnings(results) {
			warningColor.Fprintf(os.Stderr, "warning: %v\n", warning)
		}

		if err != nil {
			errorColor.Fprintf(os.Stderr, "error: %v\n", err)
			closer.Close()
			os.Exit(2)
		}

		fmt.Printf("generated register tables of %v ISAs in %v\n", len(results), settings.OutputDir)
	},
}

func init() {
	GenerateCmd.Flags().StringP("output-dir", "o", ".", "Directory the generated files are written to")
	GenerateCmd.Flags().StringP("format", "f", config.FormatGo, "Output format: go or yaml")
	GenerateCmd.Flags().String("package", "registers", "Package name of the generated Go files")
	GenerateCmd.Flags().Bool("parallel", false, "Generate ISAs concurrently")
	GenerateCmd.Flags().Int("jobs", 0, "Maximum number of ISAs generated concurrently, 0 means no limit")
	GenerateCmd.Flags().StringSliceP("declarations", "d", nil, "YAML ISA declaration files")

	for _, key := range []string{config.KeyOutputDir, config.KeyFormat, config.KeyPackage, config.KeyParallel, config.KeyJobs, config.KeyDeclarations} {
		cobra.CheckErr(viper.BindPFlag(key, GenerateCmd.Flags().Lookup(key)))
	}
}
