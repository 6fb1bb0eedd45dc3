package main

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/utf8stream"
	"github.com/npillmayer/utf8stream/report"
	"github.com/npillmayer/utf8stream/textfile"
	"github.com/spf13/cobra"
)

// errInvalidInput signals that at least one input is not valid UTF-8.
var errInvalidInput = errors.New("invalid UTF-8 found")

type checkOptions struct {
	format    string
	limit     int
	fragSize  int64
	trace     string
	envWidths bool
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:           "u8check [file ...]",
		Short:         "Check files for valid UTF-8",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := flagConfig{}
			conf.InitDefaults()
			if cmd.Flags().Changed("trace") {
				conf.setTraceLevel(opts.trace)
			}
			if err := setupTracing(conf); err != nil {
				return fmt.Errorf("setting up tracing: %w", err)
			}
			format, err := selectFormat(opts.format, stdout)
			if err != nil {
				return err
			}
			var scanOpts []report.Option
			if opts.limit > 0 {
				scanOpts = append(scanOpts, report.WithLimit(opts.limit))
			}
			if opts.envWidths {
				scanOpts = append(scanOpts, report.WithContext(uax11.ContextFromEnvironment()))
			}
			var reports []*report.Report
			if len(args) == 0 {
				rep, err := report.Scan("<stdin>", utf8stream.NewReader(stdin), scanOpts...)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
			}
			for _, name := range args {
				rep, err := checkFile(name, opts.fragSize, scanOpts)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
			}
			if err := report.Output(stdout, format, reports...); err != nil {
				return err
			}
			for _, rep := range reports {
				if !rep.Valid() {
					return errInvalidInput
				}
			}
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.Flags().StringVar(&opts.format, "format", "console", "output format (console|html)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of findings listed per input (0 = all)")
	cmd.Flags().Int64Var(&opts.fragSize, "frag", 0, "size of file fragments loaded in the background (0 = automatic)")
	cmd.Flags().StringVar(&opts.trace, "trace", "Error", "trace level (Error|Info|Debug)")
	cmd.Flags().BoolVar(&opts.envWidths, "env-width", false, "measure columns using the locale of the environment")
	return cmd
}

func selectFormat(name string, stdout io.Writer) (report.Format, error) {
	switch name {
	case "console":
		return report.ConsoleFor(stdout), nil
	case "html":
		return &report.HTML{Standalone: true}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// checkFile scans a single file, which is loaded asynchronously.
func checkFile(name string, fragSize int64, opts []report.Option) (*report.Report, error) {
	c, err := textfile.Open(name, fragSize)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return report.Scan(name, utf8stream.New(c), opts...)
}
