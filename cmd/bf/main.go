// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bf is a Brainfuck toolchain: it runs programs, pretty-prints
// them back to source, and dumps the optimizer and interpreter
// intermediate representations for inspection.
package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/bf-tools/bf/ast"
	"github.com/bf-tools/bf/compile"
	"github.com/bf-tools/bf/format"
	"github.com/bf-tools/bf/interp"
	"github.com/bf-tools/bf/invariant"
	"github.com/bf-tools/bf/ir"
	"github.com/bf-tools/bf/optimize"
	"github.com/bf-tools/bf/parser"
)

func main() {
	log.SetPrefix("bf: ")
	log.SetFlags(0)

	app := cli.NewApp()
	app.Name = "bf"
	app.Usage = "a Brainfuck parser, optimizer and interpreter"
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run a Brainfuck program",
			ArgsUsage: "file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-optimize",
					Usage: "skip the optimization passes",
				},
			},
			Action: func(c *cli.Context) error {
				file := c.Args().First()
				if file == "" {
					return cli.NewExitError("no input file given", 1)
				}
				if err := runFile(os.Stdout, os.Stdin, file, !c.Bool("no-optimize")); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "fmt",
			Usage:     "pretty-print a Brainfuck program, stripping comments",
			ArgsUsage: "file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "optimize",
					Usage: "print the optimized program instead of the parsed one",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print instruction/character counts before and after optimization",
				},
			},
			Action: func(c *cli.Context) error {
				file := c.Args().First()
				if file == "" {
					return cli.NewExitError("no input file given", 1)
				}
				if err := fmtFile(os.Stdout, file, c.Bool("optimize"), c.Bool("stats")); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "dump",
			Usage:     "dump the optimizer IR or the compiled bytecode",
			ArgsUsage: "file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "repr",
					Value: "opt",
					Usage: "representation to dump: \"opt\" or \"bytecode\"",
				},
				cli.BoolFlag{
					Name:  "no-optimize",
					Usage: "skip the optimization passes",
				},
			},
			Action: func(c *cli.Context) error {
				file := c.Args().First()
				if file == "" {
					return cli.NewExitError("no input file given", 1)
				}
				if err := dumpFile(os.Stdout, file, c.String("repr"), !c.Bool("no-optimize")); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseFile(file string) (ast.Code, error) {
	src, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parser.ParseString(string(src))
}

func compileFile(file string, optimizePasses bool) (interp.Program, error) {
	code, err := parseFile(file)
	if err != nil {
		return nil, err
	}
	opt := ir.Lift(code)
	if optimizePasses {
		opt = optimize.NewManager().Run(opt)
	}
	if err := invariant.CheckOptCode(opt); err != nil {
		return nil, err
	}
	prog := compile.Compile(opt)
	if err := invariant.CheckProgram(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func runFile(w io.Writer, r io.Reader, file string, optimizePasses bool) error {
	prog, err := compileFile(file, optimizePasses)
	if err != nil {
		return err
	}
	vm := interp.NewVM(prog, r, w)
	return vm.Run(context.Background())
}

func fmtFile(w io.Writer, file string, optimized, stats bool) error {
	code, err := parseFile(file)
	if err != nil {
		return err
	}
	var optCode ast.Code
	if optimized || stats {
		optCode = ir.Lower(optimize.NewManager().Run(ir.Lift(code)))
	}
	if stats {
		fmt.Fprintf(w, "stats: ins=%d chars=%d -> ins=%d chars=%d (optimized)\n",
			code.Len(), code.CharLen(), optCode.Len(), optCode.CharLen())
	}
	out := code
	if optimized {
		out = optCode
	}
	if err := format.WriteTo(w, out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func dumpFile(w io.Writer, file, repr string, optimizePasses bool) error {
	code, err := parseFile(file)
	if err != nil {
		return err
	}
	opt := ir.Lift(code)
	if optimizePasses {
		opt = optimize.NewManager().Run(opt)
	}
	switch repr {
	case "opt":
		if err := invariant.CheckOptCode(opt); err != nil {
			log.Printf("warning: %v", err)
		}
		dumpOptCode(w, opt, 0)
	case "bytecode":
		prog := compile.Compile(opt)
		if err := invariant.CheckProgram(prog); err != nil {
			log.Printf("warning: %v", err)
		}
		dumpProgram(w, prog)
	default:
		return fmt.Errorf("unknown representation %q", repr)
	}
	return nil
}

func dumpOptCode(w io.Writer, code ir.OptCode, depth int) {
	indent := indentOf(depth)
	for i, b := range code {
		switch b.Kind {
		case ir.KindBasic:
			fmt.Fprintf(w, "%s%04d: Basic ptr_offset=%d cells=%s\n", indent, i, b.PtrOffset, deltaMapString(b.Cells))
		case ir.KindIO:
			fmt.Fprintf(w, "%s%04d: IO op=%v offset=%d\n", indent, i, b.IOOp, b.IOOffset)
		case ir.KindLoop:
			fmt.Fprintf(w, "%s%04d: Loop {\n", indent, i)
			dumpOptCode(w, b.Body, depth+1)
			fmt.Fprintf(w, "%s}\n", indent)
		}
	}
}

func deltaMapString(d ir.DeltaMap) string {
	s := "{"
	first := true
	d.Range(func(offset int, val uint8) {
		if !first {
			s += " "
		}
		first = false
		s += fmt.Sprintf("%d:%d", offset, val)
	})
	return s + "}"
}

func dumpProgram(w io.Writer, prog interp.Program) {
	for i, instr := range prog {
		fmt.Fprintf(w, "%06d: %-16s off=%-4d val=%-3d n=%-4d target=%d\n",
			i, instr.Op, instr.Off, instr.Val, instr.N, instr.Target)
	}
}

func indentOf(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "  "
	}
	return s
}
