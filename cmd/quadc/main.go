// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

/*
Command quadc compiles a program into quadruples.

The listing is written to standard output and diagnostics to standard error.
quadc exits with status 1 when the program has errors.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contrib.go.opencensus.io/exporter/jaeger"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/quadc/quadc/internal/compiler"
	"github.com/quadc/quadc/internal/compiler/parser"
	"github.com/quadc/quadc/internal/watcher"
	"go.opencensus.io/trace"
)

var (
	prog = flag.String("prog", "", "Name of the program source to compile.")

	dumpTokens        = flag.Bool("dump_tokens", false, "Dump the tokens of the program as they are read (to INFO log).")
	dumpQuads         = flag.Bool("dump_quads", false, "Dump the quadruples of the program after compilation (to INFO log).")
	dumpMetrics       = flag.Bool("dump_metrics", false, "Print the compiler metrics in the Prometheus text format on exit.")
	maxRecursionDepth = flag.Int("max_recursion_depth", parser.DefaultMaxRecursionDepth, "The deepest nesting of statements and expressions a program may have. Deeper programs are abandoned.")

	jaegerEndpoint = flag.String("jaeger_endpoint", "", "If set, collector endpoint URL of jaeger thrift service")
	watch          = flag.Bool("watch", false, "Recompile the program each time it changes, until interrupted.")
)

// recompiler compiles the program again when the watcher reports a change.
type recompiler struct {
	c *compiler.Compiler
}

func (r recompiler) ProcessFileEvent(ctx context.Context, e watcher.Event) {
	if e.Op == watcher.Delete {
		glog.Infof("%s removed, waiting for it to return", e.Pathname)
		return
	}
	glog.Infof("%s: %s, recompiling", e.Pathname, e.Op)
	run(ctx, r.c, e.Pathname)
}

// run compiles the program at path, and reports whether it is free of errors.
func run(ctx context.Context, c *compiler.Compiler, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		glog.Error(err)
		return false
	}
	defer f.Close()
	obj, err := c.Compile(ctx, path, f)
	for _, d := range obj.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
	fmt.Print(obj)
	if err != nil && !obj.Diagnostics.HasErrors() {
		// The compiler itself failed.
		glog.Error(err)
	}
	return err == nil
}

func printMetrics(reg *prometheus.Registry) {
	mfs, err := reg.Gather()
	if err != nil {
		glog.Error(err)
		return
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			glog.Error(err)
			return
		}
	}
}

func main() {
	flag.Parse()
	status := quadc()
	glog.Flush()
	os.Exit(status)
}

// quadc runs the driver and returns the exit status.
func quadc() int {
	if *prog == "" {
		glog.Exitf("No -prog given")
	}
	if *jaegerEndpoint != "" {
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: *jaegerEndpoint,
			Process: jaeger.Process{
				ServiceName: "quadc",
			},
		})
		if err != nil {
			glog.Exit(err)
		}
		trace.RegisterExporter(je)
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
		defer je.Flush()
	}

	reg := prometheus.NewRegistry()
	opts := []compiler.Option{
		compiler.PrometheusRegisterer(reg),
		compiler.MaxRecursionDepth(*maxRecursionDepth),
	}
	if *dumpTokens {
		opts = append(opts, compiler.EmitTokens())
	}
	if *dumpQuads {
		opts = append(opts, compiler.EmitQuads())
	}
	c, err := compiler.New(opts...)
	if err != nil {
		glog.Exit(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ok := run(ctx, c, *prog)
	if *watch {
		w, err := watcher.NewProgWatcher()
		if err != nil {
			glog.Exit(err)
		}
		if err := w.Observe(*prog, recompiler{c}); err != nil {
			glog.Exit(err)
		}
		glog.Infof("Watching %s for changes", *prog)
		<-ctx.Done()
		if err := w.Close(); err != nil {
			glog.Error(err)
		}
	}
	if *dumpMetrics {
		printMetrics(reg)
	}
	if !ok {
		return 1
	}
	return 0
}
