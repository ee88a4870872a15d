// Package middleware holds the HTTP wrappers shared by every route.
package middleware

import (
	"net/http"
	"slices"
)

type Middleware func(http.Handler) http.Handler

// Chain applies middlewares in the order they were added.
type Chain struct {
	middlewares []Middleware
}

func New(mws ...Middleware) *Chain {
	return &Chain{middlewares: slices.Clone(mws)}
}

func (c *Chain) Use(mws ...Middleware) *Chain {
	c.middlewares = append(c.middlewares, mws...)
	return c
}

// Extend returns a new chain; c is left untouched.
func (c *Chain) Extend(mws ...Middleware) *Chain {
	return &Chain{middlewares: slices.Concat(c.middlewares, mws)}
}

func (c *Chain) Then(h http.Handler) http.Handler {
	for _, mw := range slices.Backward(c.middlewares) {
		h = mw(h)
	}
	return h
}

func (c *Chain) ThenFunc(fn http.HandlerFunc) http.Handler {
	return c.Then(fn)
}
