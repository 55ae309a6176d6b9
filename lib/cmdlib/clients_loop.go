package cmdlib

import "sync"

// ClientsLoop rotates over source addresses for rate limited access
type ClientsLoop struct {
	clients   []*Client
	clientIdx int
	mu        sync.Mutex
}

// NewClientsLoop returns a loop over the given clients
func NewClientsLoop(clients []*Client) *ClientsLoop {
	return &ClientsLoop{clients: clients}
}

// NextClient returns the next client in the loop
func (c *ClientsLoop) NextClient() *Client {
	c.mu.Lock()
	oldIdx := c.clientIdx
	c.clientIdx++
	if c.clientIdx == len(c.clients) {
		c.clientIdx = 0
	}
	c.mu.Unlock()
	return c.clients[oldIdx]
}
