/*
Command nplisp is the interactive front end for NPLA1: it wires up
tracing, parses a couple of startup flags and hands off to package repl.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"os"

	"github.com/npillmayer/npla1/repl"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.cmd")
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial source file to load before the prompt appears")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	if err := repl.Run("npla1> ", *initf); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(1)
	}
}
