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
	"strconv"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracers lists the trace keys used by the packages of this module.
var tracers = []string{"utf8stream", "textfile", "report"}

// flagConfig is a schuko.Configuration built from command line flags.
type flagConfig map[string]string

var _ schuko.Configuration = flagConfig{}

func (c flagConfig) InitDefaults() {
	c["tracing.adapter"] = "go"
	c["tracelevel.root"] = "Error"
	for _, key := range tracers {
		c["tracelevel."+key] = "Error"
	}
}

func (c flagConfig) IsSet(key string) bool {
	_, ok := c[key]
	return ok
}

func (c flagConfig) GetString(key string) string {
	return c[key]
}

func (c flagConfig) GetInt(key string) int {
	n, _ := strconv.Atoi(c[key])
	return n
}

func (c flagConfig) GetBool(key string) bool {
	b, _ := strconv.ParseBool(c[key])
	return b
}

func (c flagConfig) IsInteractive() bool {
	return false
}

// setTraceLevel sets the trace level for all tracers of the module.
func (c flagConfig) setTraceLevel(level string) {
	c["tracelevel.root"] = level
	for _, key := range tracers {
		c["tracelevel."+key] = level
	}
}

// setupTracing routes tracing output to the Go standard logger, with levels
// taken from conf.
func setupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range tracers {
		level := tracing.TraceLevelFromString(conf.GetString("tracelevel." + key))
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
