package taskexec

// singleFlightCall represents an in-flight call that may be shared
// among several coroutines.
type singleFlightCall struct {
	wg   WaitGroup // Waiters for this call
	val  any       // The result value of the call
	err  error     // Any error from the call
	dups int       // Number of duplicate calls
}

// SingleFlight deduplicates concurrent calls with the same key across
// coroutines on one executor: while a call for a key is suspended,
// later callers wait for its result instead of running fn again.
//
// The zero value is ready to use.
type SingleFlight struct {
	m map[any]*singleFlightCall
}

// Do runs fn for key unless a call for key is already in flight, in
// which case co waits for that call. It returns the result, the error
// and whether the result was shared with another caller.
func (g *SingleFlight) Do(co *Coroutine, key any, fn func() (any, error)) (v any, err error, shared bool) {
	if g.m == nil {
		g.m = make(map[any]*singleFlightCall)
	}

	if c, ok := g.m[key]; ok {
		c.dups++
		c.wg.Wait(co)
		return c.val, c.err, true
	}

	c := new(singleFlightCall)
	c.wg.Add(1)
	g.m[key] = c

	g.doCall(c, key, fn)
	return c.val, c.err, c.dups > 0
}

// doCall runs fn, stores its result and releases the waiters.
func (g *SingleFlight) doCall(c *singleFlightCall, key any, fn func() (any, error)) {
	defer func() {
		if g.m[key] == c {
			delete(g.m, key)
		}
		c.wg.Done()
	}()

	c.val, c.err = fn()
}
