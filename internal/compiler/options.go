// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package compiler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quadc/quadc/internal/compiler/errors"
)

// Option configures a new Compiler.
type Option func(*Compiler) error

// EmitTokens instructs the Compiler to log every token read by the lexer.
func EmitTokens() Option {
	return func(c *Compiler) error {
		c.emitTokens = true
		return nil
	}
}

// EmitQuads instructs the Compiler to print the quadruple listing of each
// program after compilation.
func EmitQuads() Option {
	return func(c *Compiler) error {
		c.emitQuads = true
		return nil
	}
}

// MaxRecursionDepth sets the deepest nesting of statements and expressions a
// program may have before its compilation is abandoned.
func MaxRecursionDepth(n int) Option {
	return func(c *Compiler) error {
		if n <= 0 {
			return errors.Errorf("max recursion depth must be positive, got %d", n)
		}
		c.maxRecursionDepth = n
		return nil
	}
}

// PrometheusRegisterer passes in a registry for setting up exported metrics.
func PrometheusRegisterer(reg prometheus.Registerer) Option {
	return func(c *Compiler) error {
		if reg == nil {
			return errors.Errorf("nil prometheus registerer")
		}
		c.reg = reg
		return nil
	}
}
