package main

import (
	"context"

	md2tufte "github.com/alnah/go-md2tufte"
)

// CLIConverter is the part of md2tufte.Converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input md2tufte.Input) (*md2tufte.ConvertResult, error)
}

var _ CLIConverter = (*md2tufte.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts md2tufte.ConverterPool to Pool.
type converterPool struct {
	inner *md2tufte.ConverterPool
}

func newConverterPool(size int, opts ...md2tufte.Option) *converterPool {
	return &converterPool{inner: md2tufte.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.inner.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*md2tufte.Converter); ok {
		p.inner.Release(conv)
	}
}

func (p *converterPool) Size() int    { return p.inner.Size() }
func (p *converterPool) Close() error { return p.inner.Close() }

// resolvePoolSize sizes the pool. HTML conversion needs no browser, so a
// single converter serves every file unless PDF export is on.
func resolvePoolSize(workers int, pdf bool) int {
	if !pdf {
		return md2tufte.MinPoolSize
	}
	return md2tufte.ResolvePoolSize(workers)
}
