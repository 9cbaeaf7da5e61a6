// Package emit serializes the register descriptors of an ISA into static tables
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/isa/regtables"
	"github.com/Manu343726/reggen/pkg/utils"
)

// Receives the finished register descriptors of each ISA. Implementations must be safe
// to call concurrently for different ISAs
type Emitter interface {
	Emit(info *registers.RegInfo) error
}

var ErrInvalidTable = errors.New("invalid register table")

// Converts frozen register descriptors into the static tables layout, in index order
func NewTable(info *registers.RegInfo) (*regtables.Info, error) {
	if err := info.Verify(); err != nil {
		return nil, fmt.Errorf("%w: ISA '%v': %w", ErrInvalidTable, info.Name, err)
	}

	return &regtables.Info{
		ISA: info.Name,
		Banks: utils.Map(info.Banks, func(bank *registers.RegBank) regtables.Bank {
			return regtables.Bank{
				Name:          bank.Name,
				FirstUnit:     bank.FirstUnit,
				Units:         bank.Units,
				Names:         append([]string(nil), bank.Names...),
				Prefix:        bank.Prefix,
				FirstTopClass: bank.FirstTopClass,
				NumTopClasses: bank.NumTopClasses,
			}
		}),
		Classes: utils.Map(info.Classes, func(rc *registers.RegClass) regtables.Class {
			return regtables.Class{
				Name:       rc.Name,
				Index:      rc.Index,
				Width:      rc.Width,
				Bank:       rc.Bank,
				TopClass:   rc.TopClass,
				First:      rc.FirstAbsoluteUnit,
				Subclasses: append(regtables.Words(nil), rc.SubclassMask...),
				Mask:       append(regtables.Words(nil), rc.Mask...),
			}
		}),
	}, nil
}

// Writes content to path unless the file already has exactly that content.
// Returns whether the file was written
func updateFile(path string, content []byte) (bool, error) {
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}

	return true, os.WriteFile(path, content, 0o644)
}

// Keeps the tables of every emitted ISA in memory
type MemoryEmitter struct {
	mutex  sync.Mutex
	tables map[string]*regtables.Info
}

func NewMemoryEmitter() *MemoryEmitter {
	return &MemoryEmitter{
		tables: map[string]*regtables.Info{},
	}
}

func (e *MemoryEmitter) Emit(info *registers.RegInfo) error {
	table, err := NewTable(info)

	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.tables[info.Name] = table
	return nil
}

// Returns the tables of an emitted ISA
func (e *MemoryEmitter) Table(isa string) (*regtables.Info, bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	table, ok := e.tables[isa]
	return table, ok
}

// Returns the names of all emitted ISAs in alphabetical order
func (e *MemoryEmitter) ISAs() []string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	isas := utils.Keys(e.tables)
	sort.Strings(isas)
	return isas
}
