// reverse61 copies a file one byte at a time, writing the bytes to the
// output in reverse order. It reads forward through one stream and seeks
// backward through the other, so both buffering directions get exercised.
//
// Usage:
//
//	reverse61 [-s SIZE] [-o OUTFILE] [FILE]
//
// Without FILE the input is standard input; without -o the output is
// standard output, which must then be seekable.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/keks/streamio"
	"github.com/keks/streamio/bufstream"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "reverse61: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	var (
		output     string
		size       int64
		bufferSize int
		noMmap     bool
		debug      bool
	)

	flagSet := pflag.NewFlagSet("reverse61", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&output, "output", "o", "", "write to this file instead of standard output")
	flagSet.Int64VarP(&size, "size", "s", -1, "number of bytes to copy (default: size of the input file)")
	flagSet.IntVarP(&bufferSize, "buffer-size", "b", bufstream.DefaultBufferSize, "stream buffer size in bytes")
	flagSet.BoolVar(&noMmap, "no-mmap", false, "never memory-map the input")
	flagSet.BoolVar(&debug, "debug", false, "log stream activity to standard error")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []bufstream.Option{
		bufstream.WithBufferSize(bufferSize),
		bufstream.WithLogger(logger),
	}
	if noMmap {
		opts = append(opts, bufstream.WithoutMmap())
	}

	in, err := bufstream.OpenFile(flagSet.Arg(0), streamio.ReadOnly, opts...)
	if err != nil {
		return err
	}
	defer in.Close()

	// Reversing onto a pipe cannot work, so refuse instead of passing
	// bytes through in the wrong order.
	out, err := bufstream.OpenFile(output, streamio.WriteOnly,
		append(opts, bufstream.WithCharLikePolicy(bufstream.CharLikeError))...)
	if err != nil {
		return err
	}

	if err := reverse(in, out, size); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func reverse(in, out *bufstream.Stream, size int64) error {
	if size < 0 {
		var ok bool
		if size, ok = in.FileSize(); !ok {
			return fmt.Errorf("can't get size of input file")
		}
	}

	for size != 0 {
		size--
		c, err := in.ReadByte()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if err := out.SeekTo(size); err != nil {
			if streamio.IsNotSeekable(err) {
				return fmt.Errorf("output file is not seekable")
			}
			return err
		}
		if err := out.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}
