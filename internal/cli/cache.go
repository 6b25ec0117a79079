package cli

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pborges/logicmin/internal/logic"
)

const cacheSize = 64

// functionCache keeps recently built functions so the menu and repeated
// commands do not rebuild the same truth table.
type functionCache struct {
	c *lru.Cache[string, *logic.Function]
}

func newFunctionCache(size int) *functionCache {
	c, err := lru.New[string, *logic.Function](size)
	if err != nil {
		panic(err)
	}
	return &functionCache{c: c}
}

// Get returns the function of expression over vars, or over its own
// sorted variables when vars is empty.
func (c *functionCache) Get(vars []string, expression string) (*logic.Function, error) {
	key := strings.Join(vars, ",") + "\x00" + expression
	if f, ok := c.c.Get(key); ok {
		return f, nil
	}
	var (
		f   *logic.Function
		err error
	)
	if len(vars) == 0 {
		f, err = logic.ParseFunction(expression)
	} else {
		f, err = logic.NewFunction(vars, expression, nil)
	}
	if err != nil {
		return nil, err
	}
	c.c.Add(key, f)
	return f, nil
}

func (c *functionCache) Len() int { return c.c.Len() }
