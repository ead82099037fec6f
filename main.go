package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	"github.com/aryanA101a/lc3vm/internal/translate"
	"github.com/aryanA101a/lc3vm/vm"
)

const (
	exitHalt      = 0
	exitLoad      = 1
	exitFault     = 1
	exitUsage     = 2
	exitInterrupt = -2
)

var f = translate.From

type cli struct {
	Images  []string `arg:"" name:"image-file" help:"Program images, loaded in order."`
	Trace   bool     `help:"Log every executed instruction." env:"LC3_TRACE"`
	LogFile string   `name:"log-file" help:"Write the log to this file instead of discarding it." env:"LC3_LOG_FILE" type:"path"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run is the whole command; it returns the process exit status.
func run(args []string, stdin *os.File, stdout io.Writer) int {
	var c cli
	parser, err := newParser(&c)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stdout, f("vm [image-file1] ..."))
		return exitUsage
	}

	logFile, err := setupLog(c.LogFile)
	if err != nil {
		fmt.Fprintln(stdout, f("log file %s: %v", c.LogFile, err))
		return exitUsage
	}
	if logFile != nil {
		defer logFile.Close()
	}

	terminal := vm.NewTerminal(stdin, stdout)
	machine := vm.NewVM(terminal)
	machine.SetTrace(c.Trace)

	if err := machine.LoadImageFiles(c.Images...); err != nil {
		var loadErr *vm.ImageLoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintln(stdout, f("Failed to load image: %s", loadErr.Path))
		} else {
			fmt.Fprintln(stdout, err)
		}
		log.Printf("%v", err)
		return exitLoad
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-interrupts:
			log.Printf("caught %v", sig)
			if err := terminal.DisableRawMode(); err != nil {
				log.Printf("%v", err)
			}
			fmt.Fprintln(stdout)
			os.Exit(exitInterrupt)
		case <-done:
		}
	}()

	if err := terminal.EnableRawMode(); err != nil {
		log.Printf("%v", err)
	}

	err = machine.Run(context.Background())

	if rerr := terminal.DisableRawMode(); rerr != nil {
		log.Printf("%v", rerr)
	}

	if err != nil {
		if ferr := terminal.Flush(); ferr != nil {
			log.Printf("%v", ferr)
		}
		fmt.Fprintln(stdout, err)
		log.Printf("%v", err)
		return exitFault
	}
	return exitHalt
}

func newParser(c *cli) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("vm"),
		kong.Description("Run LC-3 program images."),
	)
}

// setupLog sends the log to path, or discards it when path is empty: the
// console belongs to the running program.
func setupLog(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "open")
	}
	log.SetOutput(file)
	return file, nil
}
