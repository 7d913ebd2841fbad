package shell

import (
	"bytes"
)

// collector captures command output up to a byte limit. Writes past the
// limit are discarded so a runaway command cannot exhaust memory.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int64
	truncated bool
}

func newCollector(maxBytes int64) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (int, error) {
	remaining := c.maxBytes - int64(c.buffer.Len())
	if remaining <= 0 {
		c.truncated = true
		return len(p), nil
	}

	toWrite := p
	if int64(len(toWrite)) > remaining {
		toWrite = toWrite[:remaining]
		c.truncated = true
	}

	if _, err := c.buffer.Write(toWrite); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *collector) String() string {
	return c.buffer.String()
}

func (c *collector) Truncated() bool {
	return c.truncated
}
