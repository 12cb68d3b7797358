/*
File    : numlang/cmd/numlang/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the numlang CLI entry point. It provides three modes of
operation -- run a file, start an interactive REPL, or serve REPL
sessions over TCP -- grounded on the teacher's main/main.go mode
dispatch (file vs. REPL vs. `server <port>`) and banner/help/version
text, with the hand-rolled os.Args switch replaced by
github.com/spf13/cobra subcommands.
*/
package main

import (
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/numlang"
	"github.com/akashmaji946/numlang/repl"
)

const (
	version = "v1.0.0"
	author  = "akashmaji(@iisc.ac.in)"
	license = "MIT"
	prompt  = "numlang >>> "
	line    = "----------------------------------------------------------------"
)

var banner = `
 _ __  _   _ _ __ ___ | | __ _ _ __   __ _
| '_ \| | | | '_ ` + "`" + ` _ \| |/ _` + "`" + ` | '_ \ / _` + "`" + ` |
| | | | |_| | | | | | | | (_| | | | | (_| |
|_| |_|\__,_|_| |_| |_|_|\__,_|_| |_|\__, |
                                     |___/
`

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	root := &cobra.Command{
		Use:     "numlang",
		Short:   "numlang - an embeddable numeric expression/statement language",
		Version: version,
	}

	root.AddCommand(newRunCmd(), newReplCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a numlang source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := repl.NewRepl(banner, version, author, line, license, prompt)
			r.Start(os.Stdin, os.Stdout)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <port>",
		Short: "Serve REPL sessions over TCP, one per connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(args[0])
		},
	}
}

// runFile reads and executes a numlang source file against a fresh
// environment, printing the result or a diagnostic with a source span.
func runFile(fileName string) error {
	src, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		return err
	}

	env := numlang.NewEnvironment()
	v, d := numlang.Interpret(string(src), env, numlang.Limits{})
	if d != nil {
		redColor.Fprintf(os.Stderr, "%s\n", d.Error())
		return d
	}
	yellowColor.Fprintf(os.Stdout, "%s\n", numlang.FormatResult(v))
	return nil
}

// serve listens on port, handing each accepted connection its own REPL
// session and environment -- mirroring the teacher's handleClient, one
// goroutine per client, reusing net.Conn as both reader and writer.
func serve(port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		return err
	}
	defer listener.Close()
	cyanColor.Printf("numlang REPL server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept failed: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected from %s\n", conn.RemoteAddr())
	r := repl.NewRepl(banner, version, author, line, license, prompt)
	r.Start(conn, conn)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}
