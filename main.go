package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v2"

	"lc3/loader"
	"lc3/memory"
	"lc3/term"
	"lc3/vm"
)

func main() {
	app := &cli.App{
		Name:      "lc3",
		Usage:     "run LC-3 object images",
		Version:   "v0.0.1",
		ArgsUsage: "image [image...]",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelp(c)
		return cli.Exit("", 2)
	}

	tty := term.New()
	mem := memory.New(tty)

	for _, path := range c.Args().Slice() {
		if err := loader.LoadFile(path, mem); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load image: %s!\n", path)
			continue
		}
	}

	if err := tty.EnterRawMode(); err != nil {
		return cli.Exit(err, 1)
	}
	defer tty.LeaveRawMode()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	go func() {
		<-sig
		tty.LeaveRawMode()
		fmt.Println()
		os.Exit(1)
	}()

	machine := vm.New(mem, tty)
	if err := machine.Run(); err != nil {
		if errors.Is(err, vm.ErrInvalidOpcode) {
			fmt.Println("Invalid opcode!")
			return cli.Exit("", 1)
		}
		return cli.Exit(err, 1)
	}
	return nil
}
