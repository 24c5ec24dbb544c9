package sample

import "strings"

// Shout upper-cases s and adds an exclamation mark.
func Shout(s string) string {
	return strings.ToUpper(s) + "!"
}

type counter struct{ n int }

func (c *counter) Inc() int {
	c.n += 1
	return c.n
}
