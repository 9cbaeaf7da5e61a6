package emit

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/isa/regtables"
	"github.com/Manu343726/reggen/pkg/utils"
)

//go:embed templates
var templates embed.FS

var ErrIdentifierCollision = errors.New("register classes map to the same Go identifier")

// Identifiers declared by the generated file itself
var reservedIdentifiers = map[string]bool{
	"Info":    true,
	"Classes": true,
}

// Returns the exported Go identifier used for a register class constant
func classIdentifier(name string) (string, error) {
	runes := []rune(name)

	if len(runes) == 0 {
		return "", fmt.Errorf("empty register class name")
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			runes[i] = '_'
		}
	}

	if !unicode.IsLetter(runes[0]) {
		return "", fmt.Errorf("register class name '%v' does not start with a letter", name)
	}

	runes[0] = unicode.ToUpper(runes[0])
	return string(runes), nil
}

// Checks the identifiers declared for each class, <Ident> and <Ident>Index, are unique
// across the generated file
func checkIdentifiers(classes []regtables.Class) error {
	declaredBy := make(map[string]string, 2*len(classes))
	var errs []error

	for _, rc := range classes {
		identifier, err := classIdentifier(rc.Name)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, declared := range []string{identifier, identifier + "Index"} {
			if reservedIdentifiers[declared] {
				errs = append(errs, utils.MakeError(ErrIdentifierCollision, "class '%v' declares %v, which is reserved by the generated file", rc.Name, declared))
			} else if other, found := declaredBy[declared]; found {
				errs = append(errs, utils.MakeError(ErrIdentifierCollision, "classes '%v' and '%v' both declare %v", other, rc.Name, declared))
			} else {
				declaredBy[declared] = rc.Name
			}
		}
	}

	return errors.Join(errs...)
}

// Renders the register tables of each ISA as a Go source file registers-<isa>.go
type GoEmitter struct {
	template *template.Template

	// Directory the files are written to
	OutputDir string

	// Package clause of the generated files
	Package string

	Logger *slog.Logger
}

type goTemplateData struct {
	Package string
	Info    *regtables.Info
}

func NewGoEmitter(outputDir string, pkg string, logger *slog.Logger) (*GoEmitter, error) {
	funcs := template.FuncMap{
		"Quote": func(s string) string {
			return fmt.Sprintf("%q", s)
		},
		"QuoteJoin": func(items []string) string {
			return strings.Join(utils.Map(items, func(s string) string { return fmt.Sprintf("%q", s) }), ", ")
		},
		"HexWords": func(words regtables.Words) string {
			return strings.Join(utils.WordMask(words).HexWords(), ", ")
		},
		"Ident": classIdentifier,
	}

	t, err := template.New("registers.go.tmpl").Funcs(funcs).
		ParseFS(templates, "templates/registers.go.tmpl")

	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GoEmitter{
		template:  t,
		OutputDir: outputDir,
		Package:   pkg,
		Logger:    logger,
	}, nil
}

// Returns the Go source of the register tables of an ISA
func (e *GoEmitter) Source(info *registers.RegInfo) ([]byte, error) {
	table, err := NewTable(info)

	if err != nil {
		return nil, err
	}

	if err := checkIdentifiers(table.Classes); err != nil {
		return nil, fmt.Errorf("ISA '%v': %w", info.Name, err)
	}

	var buffer bytes.Buffer

	if err := e.template.Execute(&buffer, &goTemplateData{Package: e.Package, Info: table}); err != nil {
		return nil, fmt.Errorf("rendering registers of ISA '%v': %w", info.Name, err)
	}

	source, err := format.Source(buffer.Bytes())

	if err != nil {
		return nil, fmt.Errorf("formatting registers of ISA '%v': %w", info.Name, err)
	}

	return source, nil
}

// Returns the path of the file generated for an ISA
func (e *GoEmitter) Path(isa string) string {
	return filepath.Join(e.OutputDir, "registers-"+isa+".go")
}

func (e *GoEmitter) Emit(info *registers.RegInfo) error {
	source, err := e.Source(info)

	if err != nil {
		return err
	}

	path := e.Path(info.Name)
	written, err := updateFile(path, source)

	if err != nil {
		return err
	}

	e.Logger.Debug("emitted register tables", "isa", info.Name, "file", path, "updated", written)
	return nil
}
