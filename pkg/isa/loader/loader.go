// Package loader reads ISA register declarations from YAML files.
//
// A declaration file is a stream of YAML documents, one per ISA:
//
//	name: riscv32
//	banks:
//	  - name: IntRegs
//	    prefix: x
//	    units: 32
//	    classes:
//	      - name: GPR
//	        subclasses:
//	          - name: GPR8
//	            start: 8
//	            count: 8
//	---
//	name: virtual
//
// Unknown fields are rejected so typos in a declaration do not go unnoticed.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDeclaration = errors.New("invalid ISA declaration")

// Reads all the ISA declarations of a YAML stream. source names the stream in errors
func Load(reader io.Reader, source string) ([]*registers.Declaration, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var decls []*registers.Declaration

	for {
		decl := &registers.Declaration{}
		err := decoder.Decode(decl)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, utils.MakeError(ErrInvalidDeclaration, "%v: document %v: %v", source, len(decls)+1, err)
		}

		if len(decl.Name) == 0 {
			return nil, utils.MakeError(ErrInvalidDeclaration, "%v: document %v has no ISA name", source, len(decls)+1)
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

// Reads all the ISA declarations of a YAML file
func LoadFile(path string) ([]*registers.Declaration, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("opening declaration file: %w", err)
	}

	defer file.Close()

	return Load(file, path)
}

// Reads the ISA declarations of all files, in order
func LoadFiles(paths []string) ([]*registers.Declaration, error) {
	var decls []*registers.Declaration

	for _, path := range paths {
		fileDecls, err := LoadFile(path)

		if err != nil {
			return nil, err
		}

		decls = append(decls, fileDecls...)
	}

	return decls, nil
}
