// Package config collects the tool settings from flags, environment and config file
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Manu343726/reggen/pkg/isa/loader"
	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/isa/targets"
	"github.com/Manu343726/reggen/pkg/logging"
	"github.com/spf13/viper"
)

const (
	KeyOutputDir    = "output-dir"
	KeyFormat       = "format"
	KeyPackage      = "package"
	KeyParallel     = "parallel"
	KeyJobs         = "jobs"
	KeyDeclarations = "declarations"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"
)

const (
	FormatGo   = "go"
	FormatYaml = "yaml"
)

func init() {
	SetDefaults(viper.GetViper())
}

// Registers the default value of every setting
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyFormat, FormatGo)
	v.SetDefault(KeyPackage, "registers")
	v.SetDefault(KeyLogLevel, "info")
}

type Settings struct {
	OutputDir    string
	Format       string
	Package      string
	Parallel     bool
	Jobs         int
	Declarations []string
	Log          logging.Config
}

// Reads the settings from a viper instance
func FromViper(v *viper.Viper) (Settings, error) {
	settings := Settings{
		OutputDir:    v.GetString(KeyOutputDir),
		Format:       v.GetString(KeyFormat),
		Package:      v.GetString(KeyPackage),
		Parallel:     v.GetBool(KeyParallel),
		Jobs:         v.GetInt(KeyJobs),
		Declarations: v.GetStringSlice(KeyDeclarations),
		Log: logging.Config{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
	}

	if settings.Format != FormatGo && settings.Format != FormatYaml {
		return settings, fmt.Errorf("unsupported output format '%v', expected '%v' or '%v'", settings.Format, FormatGo, FormatYaml)
	}

	return settings, nil
}

// Reads the settings from the global viper instance
func Load() (Settings, error) {
	return FromViper(viper.GetViper())
}

// Returns the logger configured by the settings
func (s *Settings) Logger(console io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(s.Log, console)
}

// Returns the declarations of the requested built-in targets followed by the ones in the
// declaration files. With no targets nor files, returns all the built-in targets
func (s *Settings) ISAs(targetNames []string) ([]*registers.Declaration, error) {
	if len(targetNames) == 0 && len(s.Declarations) == 0 {
		return targets.All(), nil
	}

	var decls []*registers.Declaration

	for _, name := range targetNames {
		decl, err := targets.ByName(name)

		if err != nil {
			return nil, err
		}

		decls = append(decls, decl)
	}

	fileDecls, err := loader.LoadFiles(s.Declarations)

	if err != nil {
		return nil, err
	}

	return append(decls, fileDecls...), nil
}
