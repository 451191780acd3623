package command

// Middleware decorates a handler. Middlewares run before the command body and
// after permission, cooldown, and validation checks.
type Middleware func(HandlerFunc) HandlerFunc

// Chain applies middlewares so the first listed runs outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Use returns a copy of the command with its handler wrapped. The original
// declaration is left untouched.
func (c *Command) Use(mws ...Middleware) *Command {
	out := *c
	out.Handler = Chain(c.Handler, mws...)
	return &out
}
