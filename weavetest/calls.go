package weavetest

import settle "github.com/iov-one/settle"

// calls records every request passed to a mock, split by call type.
type calls struct {
	check   int
	deliver int
	paths   []string
}

func (c *calls) record(tx settle.Tx, deliver bool) {
	if deliver {
		c.deliver++
	} else {
		c.check++
	}
	path := "(missing)"
	if tx != nil {
		path = settle.GetPath(tx)
	}
	c.paths = append(c.paths, path)
}

// CheckCallCount returns how many times Check was called.
func (c *calls) CheckCallCount() int { return c.check }

// DeliverCallCount returns how many times Deliver was called.
func (c *calls) DeliverCallCount() int { return c.deliver }

// CallCount returns the number of Check and Deliver calls together.
func (c *calls) CallCount() int { return c.check + c.deliver }

// Paths returns the message path of every request seen, in call order. A
// request without a transaction or message is recorded as "(missing)".
func (c *calls) Paths() []string { return c.paths }
