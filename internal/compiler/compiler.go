// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package compiler is the entry point for turning a program into quadruples.
// It owns the diagnostics of each compilation, runs the single parse pass,
// and accounts for the result in metrics and trace spans.
package compiler

import (
	"context"
	"expvar"
	"io"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quadc/quadc/internal/compiler/code"
	"github.com/quadc/quadc/internal/compiler/errors"
	"github.com/quadc/quadc/internal/compiler/parser"
	"go.opencensus.io/trace"
)

var (
	// Compiles counts the number of compilations, by program name.
	Compiles = expvar.NewMap("compiles_total")
	// CompileErrors counts the number of compilations that failed, by program name.
	CompileErrors = expvar.NewMap("compile_errors_total")
)

// Compiler compiles programs.  A Compiler holds no per-program state, so it
// may be shared between goroutines.
type Compiler struct {
	emitTokens        bool
	emitQuads         bool
	maxRecursionDepth int

	reg prometheus.Registerer

	compileDurations *prometheus.HistogramVec
	diagnostics      *prometheus.CounterVec
	quads            *prometheus.CounterVec
}

// New creates a Compiler configured by opts.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		maxRecursionDepth: parser.DefaultMaxRecursionDepth,
		compileDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quadc",
			Subsystem: "compiler",
			Name:      "compile_duration_seconds",
			Help:      "Program compilation time distribution in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2.0, 12),
		}, []string{"prog"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quadc",
			Subsystem: "compiler",
			Name:      "diagnostics_total",
			Help:      "Number of diagnostics reported, by category and severity.",
		}, []string{"category", "severity"}),
		quads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quadc",
			Subsystem: "compiler",
			Name:      "quads_total",
			Help:      "Number of quadruples generated.",
		}, []string{"prog"}),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.reg != nil {
		for _, m := range []prometheus.Collector{c.compileDurations, c.diagnostics, c.quads} {
			if err := c.reg.Register(m); err != nil {
				return nil, errors.Wrapf(err, "registering compiler metrics")
			}
		}
	}
	return c, nil
}

// Compile compiles the program read from input into an Object.  The Object
// is always returned, holding everything generated and every diagnostic
// reported.  The error is non-nil when a diagnostic has error severity, or
// when the compiler itself failed.
func (c *Compiler) Compile(ctx context.Context, name string, input io.Reader) (*code.Object, error) {
	name = filepath.Base(name)
	ctx, span := trace.StartSpan(ctx, "compiler.Compile")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("prog", name))

	obj := &code.Object{Name: name}
	if err := ctx.Err(); err != nil {
		return obj, err
	}
	Compiles.Add(name, 1)
	start := time.Now()
	r, err := c.parse(ctx, name, input, &obj.Diagnostics)
	c.finalize(ctx, obj, r)
	c.compileDurations.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		CompileErrors.Add(name, 1)
		span.SetStatus(trace.Status{Code: trace.StatusCodeInternal, Message: err.Error()})
		return obj, err
	}
	if err := obj.Diagnostics.Err(); err != nil {
		CompileErrors.Add(name, 1)
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: "compile errors"})
		return obj, err
	}
	return obj, nil
}

func (c *Compiler) parse(ctx context.Context, name string, input io.Reader, sink *errors.ErrorList) (*parser.Result, error) {
	_, span := trace.StartSpan(ctx, "compiler.parse")
	defer span.End()
	opts := []parser.Option{parser.MaxRecursionDepth(c.maxRecursionDepth)}
	if c.emitTokens {
		opts = append(opts, parser.EmitTokens())
	}
	return parser.Parse(name, input, sink, opts...)
}

// finalize moves the parse result into obj and accounts for it.
func (c *Compiler) finalize(ctx context.Context, obj *code.Object, r *parser.Result) {
	_, span := trace.StartSpan(ctx, "compiler.finalize")
	defer span.End()
	if r != nil {
		obj.Quads, obj.Strings, obj.Symbols = r.Quads, r.Strings, r.Symbols
	}
	c.quads.WithLabelValues(obj.Name).Add(float64(len(obj.Quads)))
	for _, d := range obj.Diagnostics {
		c.diagnostics.WithLabelValues(d.Category().String(), d.Severity().String()).Inc()
	}
	span.AddAttributes(
		trace.Int64Attribute("quads", int64(len(obj.Quads))),
		trace.Int64Attribute("diagnostics", int64(len(obj.Diagnostics))))
	glog.V(1).Infof("%s: %d quadruples, %d diagnostics", obj.Name, len(obj.Quads), len(obj.Diagnostics))
	if c.emitQuads {
		glog.Infof("%s quadruples:\n%s", obj.Name, obj)
	}
}
