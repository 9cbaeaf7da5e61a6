package emit

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"gopkg.in/yaml.v3"
)

// Dumps the register tables of each ISA as a YAML document registers-<isa>.yaml
type YamlEmitter struct {
	OutputDir string
	Logger    *slog.Logger
}

func NewYamlEmitter(outputDir string, logger *slog.Logger) *YamlEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &YamlEmitter{
		OutputDir: outputDir,
		Logger:    logger,
	}
}

// Returns the YAML document of the register tables of an ISA
func (e *YamlEmitter) Document(info *registers.RegInfo) ([]byte, error) {
	table, err := NewTable(info)

	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)

	if err := encoder.Encode(table); err != nil {
		return nil, fmt.Errorf("encoding registers of ISA '%v': %w", info.Name, err)
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Returns the path of the file generated for an ISA
func (e *YamlEmitter) Path(isa string) string {
	return filepath.Join(e.OutputDir, "registers-"+isa+".yaml")
}

func (e *YamlEmitter) Emit(info *registers.RegInfo) error {
	document, err := e.Document(info)

	if err != nil {
		return err
	}

	path := e.Path(info.Name)
	written, err := updateFile(path, document)

	if err != nil {
		return err
	}

	e.Logger.Debug("emitted register tables", "isa", info.Name, "file", path, "updated", written)
	return nil
}
