/*
Lr1i starts an interactive LR(1) recognizer session.

It reads in a grammar file, builds the canonical LR(1) ACTION/GOTO table, and
then repeatedly reads words from stdin (one per line) and reports whether
each is in the grammar's language. Construction failures (grammars that are
not LR(1)) are reported immediately and the program exits without starting a
session.

Usage:

	lr1i [flags]

The flags are:

	-v, --version
		Give the current version of the recognizer and then exit.

	-g, --grammar FILE
		Use the provided grammar file. Defaults to "grammar.txt" in the
		current working directory. Files ending in ".toml" are parsed as a
		TOML grammar manifest; anything else is parsed with the textual
		"NONTERM->SYMBOLS" notation.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline, even if launched in a tty.

	-t, --dump-table
		Print the constructed ACTION/GOTO table before starting the session.

Once a session has started, each line of input is treated as a word to test.
Type "QUIT" to exit.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/ingest"
	"github.com/dekarrin/lr1/internal/lr1/parse"
	"github.com/dekarrin/lr1/internal/version"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConstructionError indicates the grammar could not be built into an
	// LR(1) table.
	ExitConstructionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading the grammar file.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.txt", "The grammar file to build a recognizer from")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	dumpTable   *bool   = pflag.BoolP("dump-table", "t", false, "Print the constructed ACTION/GOTO table before starting the session")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	g, err := loadGrammar(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	rec, err := parse.New(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConstructionError
		return
	}

	if *dumpTable {
		fmt.Println(rec.Table.String())
	}

	if err := runSession(rec, *forceDirect); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConstructionError
	}
}

func loadGrammar(path string) (grammar.Grammar, error) {
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		return ingest.ParseTOMLFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}
	return ingest.ParseText(string(data))
}

func runSession(rec *parse.Recognizer, forceDirect bool) error {
	useReadline := !forceDirect && readline.IsTerminal(int(os.Stdin.Fd()))

	if useReadline {
		return runReadlineSession(rec)
	}
	return runDirectSession(rec, os.Stdin)
}

func runReadlineSession(rec *parse.Recognizer) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "word> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !handleLine(rec, line) {
			return nil
		}
	}
}

func runDirectSession(rec *parse.Recognizer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !handleLine(rec, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func handleLine(rec *parse.Recognizer, line string) (keepGoing bool) {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "quit") {
		return false
	}
	if line == "" {
		return true
	}

	ok, err := rec.AcceptsString(line)
	if err != nil {
		pterm.Error.Printfln("%q: %s", line, err.Error())
		return true
	}
	if ok {
		pterm.Success.Printfln("%q is in the language", line)
	} else {
		pterm.Warning.Printfln("%q is NOT in the language", line)
	}
	return true
}
