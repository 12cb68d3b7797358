/*
File    : numlang/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the interactive Read-Eval-Print Loop, grounded
on the teacher's repl/repl.go: chzyer/readline for line editing and
history, fatih/color for result/error coloring, one persistent
environment handle reused across every line (spec.md §3's "persists
across successive interpret calls"). The teacher's `.exit`-only meta-
command is joined by `.env`, listing currently declared variables via
numlang.ListVariables -- a REPL without any way to inspect what it
knows about would be worse than the teacher's own `/scope`.
*/
package repl

import (
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/numlang"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl bundles the static display text around one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl ready to Start.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to numlang!")
	cyanColor.Fprintf(writer, "%s\n", "Type an expression or statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit, '.env' to list declared variables.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against a fresh environment until the user
// exits (`.exit` or EOF/Ctrl-D).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	env := numlang.NewEnvironment()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if line == ".env" {
			rl.SaveHistory(line)
			r.printEnv(writer, env)
			continue
		}

		rl.SaveHistory(line)
		r.execute(writer, line, env)
	}
}

func (r *Repl) printEnv(writer io.Writer, env *numlang.Environment) {
	vars := numlang.ListVariables(env)
	if len(vars) == 0 {
		cyanColor.Fprintln(writer, "(no variables declared)")
		return
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	for _, v := range vars {
		cyanColor.Fprintf(writer, "%s %s = %s\n", v.Kind, v.Name, numlang.FormatResult(v.Value))
	}
}

// execute interprets one line against env, printing the result or
// diagnostic. Unlike file mode, a diagnostic never ends the
// session -- the REPL keeps running so the user can correct the line.
func (r *Repl) execute(writer io.Writer, line string, env *numlang.Environment) {
	v, d := numlang.Interpret(line, env, numlang.Limits{})
	if d != nil {
		redColor.Fprintf(writer, "%s\n", d.Error())
		return
	}
	yellowColor.Fprintf(writer, "%s\n", numlang.FormatResult(v))
}
