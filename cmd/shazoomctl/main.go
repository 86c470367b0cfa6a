// Command shazoomctl is the thin command-line binding around the
// fingerprint engine: read a file, run the pipeline, print the results.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"shazoom/core"
	"shazoom/pipeline"
	"shazoom/utils"
)

func main() {
	var (
		offset = pflag.IntP("offset", "o", 0, "seconds to skip before slicing excerpts")
		length = pflag.IntP("seconds", "s", 0, "excerpt length in seconds (0 = default 12)")
		out    = pflag.StringP("out", "w", "", "write raw envelope bytes here instead of printing data URIs")
		help   = pflag.BoolP("help", "h", false, "print usage and exit")
	)
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: shazoomctl [--offset N] [--seconds N] [--out file] <audio-file>")
		pflag.PrintDefaults()
		if *help {
			return
		}
		os.Exit(2)
	}

	logger := utils.Logger()
	ctx := context.Background()

	path := pflag.Arg(0)
	audio, err := os.ReadFile(path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read input file", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	fingerprints, err := pipeline.Recognize(audio, *offset, *length)
	if err != nil {
		logger.ErrorContext(ctx, "recognize failed", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	for i, fp := range fingerprints {
		buf, err := fp.Encode()
		if err != nil {
			logger.ErrorContext(ctx, "encode failed", slog.Int("excerpt", i), slog.Any("error", err))
			os.Exit(1)
		}

		if *out != "" {
			if err := writeEnvelope(*out, i, buf); err != nil {
				logger.ErrorContext(ctx, "failed to write envelope", slog.Any("error", err))
				os.Exit(1)
			}
			continue
		}

		fmt.Println(core.ToDataURI(buf))
	}
}

func writeEnvelope(base string, index int, buf []byte) error {
	name := base
	if index > 0 {
		name = fmt.Sprintf("%s.%d", base, index)
	}
	return os.WriteFile(name, buf, 0o644)
}
