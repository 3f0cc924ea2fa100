package main

import (
	litdoc "github.com/alnah/go-litdoc"
)

// converterPool adapts litdoc.ConverterPool to the Pool interface.
type converterPool struct {
	*litdoc.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = converterPool{}

// newConverterPool creates a pool of n converters built with opts.
func newConverterPool(n int, opts ...litdoc.Option) converterPool {
	return converterPool{litdoc.NewConverterPool(n, opts...)}
}

// Acquire implements Pool.
func (p converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.ConverterPool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release implements Pool.
func (p converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*litdoc.Converter); ok {
		p.ConverterPool.Release(conv)
	}
}
