// Package generate runs the register table generation of a batch of ISAs.
//
// ISAs are fully independent: each one is built, resolved and emitted on its own, and
// a configuration error in one ISA never prevents the others from being emitted.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Manu343726/reggen/pkg/isa/emit"
	"github.com/Manu343726/reggen/pkg/isa/registers"
	"github.com/Manu343726/reggen/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateISA = errors.New("duplicate ISA")
	ErrGeneration   = errors.New("register generation failed")
)

// Outcome of the generation of one ISA
type Result struct {
	ISA string

	// Frozen register descriptors, nil if the declaration was invalid
	Info *registers.RegInfo

	Warnings []registers.Warning

	// Configuration or emission error, nil if the ISA was emitted
	Err error
}

type Options struct {
	// Process ISAs concurrently
	Parallel bool

	// Maximum number of ISAs processed at the same time when Parallel is set, <= 0 means no limit
	Jobs int

	Logger *slog.Logger
}

type Generator struct {
	emitter emit.Emitter
	options Options
}

func NewGenerator(emitter emit.Emitter, options Options) *Generator {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Generator{
		emitter: emitter,
		options: options,
	}
}

// Builds and emits the registers of every ISA, returning one result per ISA in input order.
// The returned error joins the errors of all the ISAs that failed, or is the context error
// if the context was cancelled before all ISAs were processed
func (g *Generator) Run(ctx context.Context, isas []*registers.Declaration) ([]Result, error) {
	results := make([]Result, len(isas))
	seen := map[string]bool{}
	pending := make([]int, 0, len(isas))

	for i, decl := range isas {
		results[i].ISA = decl.Name

		if seen[decl.Name] {
			results[i].Err = utils.MakeError(ErrDuplicateISA, "'%v' is declared more than once", decl.Name)
			g.options.Logger.Error("skipping ISA", "isa", decl.Name, "error", results[i].Err)
			continue
		}

		seen[decl.Name] = true
		pending = append(pending, i)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if !g.options.Parallel {
		group.SetLimit(1)
	} else if g.options.Jobs > 0 {
		group.SetLimit(g.options.Jobs)
	}

	for _, i := range pending {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = g.generate(isas[i])
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	failed := utils.Filter(results, func(r Result) bool { return r.Err != nil })

	if len(failed) > 0 {
		return results, fmt.Errorf("%w for %v of %v ISAs: %w", ErrGeneration, len(failed), len(isas),
			errors.Join(utils.Map(failed, func(r Result) error { return r.Err })...))
	}

	return results, nil
}

func (g *Generator) generate(decl *registers.Declaration) Result {
	logger := g.options.Logger.With("isa", decl.Name)
	logger.Debug("building register descriptors", "banks", len(decl.Banks))

	info, warnings, err := registers.Build(decl)
	result := Result{ISA: decl.Name, Info: info, Warnings: warnings, Err: err}

	for _, warning := range warnings {
		logger.Warn(warning.Err.Error())
	}

	if err != nil {
		logger.Error("invalid register declaration", "error", err)
		return result
	}

	if err := g.emitter.Emit(info); err != nil {
		result.Err = fmt.Errorf("emitting registers of ISA '%v': %w", decl.Name, err)
		logger.Error("emission failed", "error", err)
		return result
	}

	logger.Info("generated register tables", "banks", len(info.Banks), "classes", len(info.Classes))
	return result
}

// Returns all the warnings of a batch of results
func Warnings(results []Result) []registers.Warning {
	var warnings []registers.Warning

	for _, result := range results {
		warnings = append(warnings, result.Warnings...)
	}

	return warnings
}
