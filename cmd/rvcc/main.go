// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"rvcc/internal/diag"
	"rvcc/internal/ir"
	"rvcc/internal/irtext"
	"rvcc/internal/passes"
	"rvcc/internal/riscv"
	"rvcc/internal/ssa"
)

// options are the two flags the CLI understands, parsed by hand below
// rather than pulling in a flags-parsing dependency, the way the
// teacher's own CLI avoids one.
type options struct {
	path     string
	optimize bool
	emitIR   bool
}

func parseArgs(args []string) (options, error) {
	opts := options{optimize: true}
	for _, a := range args {
		switch a {
		case "-opt=false":
			opts.optimize = false
		case "-emit-ir":
			opts.emitIR = true
		default:
			opts.path = a
		}
	}
	if opts.path == "" {
		return opts, fmt.Errorf("no input file given")
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Println("Usage: rvcc [-opt=false] [-emit-ir] <file.ir>")
		os.Exit(1)
	}

	source, err := os.ReadFile(opts.path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter(opts.path, string(source))
	module, err := irtext.Parse(opts.path, string(source), reporter)
	if err != nil {
		reporter.PrintAll()
		os.Exit(1)
	}

	passList := []passes.FunctionPass{
		passes.ConstantFold{},
		passes.ConstantPropagate{},
		passes.DeadCodeElimination{},
	}

	for _, fn := range module.Functions {
		if opts.emitIR {
			fmt.Printf("-- %s before SSA --\n%s", fn.Name, ir.PrintFunction(fn))
		}

		if _, err := ssa.Build(fn); err != nil {
			reportCoreError(err)
			os.Exit(1)
		}

		if opts.emitIR {
			fmt.Printf("-- %s after SSA --\n%s", fn.Name, ir.PrintFunction(fn))
		}

		if !opts.optimize {
			continue
		}

		// Mirrors passes.Manager.Run's per-function chain exactly: a
		// pass returning false stops the remaining passes for this
		// function, just without hiding the intermediate IR from
		// -emit-ir.
		for _, p := range passList {
			changed := p.Run(fn)
			if opts.emitIR {
				fmt.Printf("-- %s after %s --\n%s", fn.Name, p.Name(), ir.PrintFunction(fn))
			}
			if !changed {
				break
			}
		}
	}

	var machineFuncs []*riscv.MachineFunction
	allocs := map[string]*riscv.AllocResult{}

	for _, fn := range module.Functions {
		mf, err := riscv.Select(fn)
		if err != nil {
			reportCoreError(err)
			os.Exit(1)
		}

		intervals := riscv.BuildIntervals(mf)
		allocs[mf.Name] = riscv.LinearScan(intervals, riscv.AllRegs)
		machineFuncs = append(machineFuncs, mf)
	}

	asm := riscv.Emit(machineFuncs, allocs, reporter)
	fmt.Print(asm)

	for _, d := range reporter.Diagnostics() {
		if diag.IsWarning(d.Code) {
			fmt.Print(reporter.Format(d))
		}
	}

	color.Green("✅ compiled %s", opts.path)
}

// reportCoreError prints a core diagnostic (SSA construction or
// instruction selection) that carries no source position of its own.
func reportCoreError(err error) {
	color.Red("❌ %s", err)
}
