package extension

import (
	"reflect"
	"sort"
	"sync"

	"github.com/viant/morph/model/types"
	"github.com/viant/x"
)

// Commands provides the command builder registry. Config types of registered
// builders are tracked in an x.Registry so that stage settings can be bound to
// strongly typed config instances by name.
type Commands struct {
	types    *x.Registry
	builders map[string]types.Builder
	mux      sync.RWMutex
}

// Types returns the config type registry.
func (c *Commands) Types() *x.Registry {
	return c.types
}

// Lookup returns a builder by command name, or nil when not registered.
func (c *Commands) Lookup(name string) types.Builder {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.builders[name]
}

// Register registers a command builder and its config type.
func (c *Commands) Register(builder types.Builder) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if configType := builder.ConfigType(); configType != nil {
		rType := configType
		if rType.Kind() == reflect.Ptr {
			rType = rType.Elem()
		}
		c.types.Register(x.NewType(rType, x.WithName(builder.Name())))
	}
	c.builders[builder.Name()] = builder
}

// Names returns registered command names in lexical order.
func (c *Commands) Names() []string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	ret := make([]string, 0, len(c.builders))
	for name := range c.builders {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// NewConfig creates a zero-valued config instance for the named command.
func (c *Commands) NewConfig(name string) (interface{}, error) {
	c.mux.RLock()
	builder, ok := c.builders[name]
	c.mux.RUnlock()
	if !ok {
		return nil, types.NewCommandNotFoundError(name)
	}
	configType := builder.ConfigType()
	if configType == nil {
		return nil, nil
	}
	if configType.Kind() == reflect.Ptr {
		configType = configType.Elem()
	}
	return reflect.New(configType).Interface(), nil
}

// NewCommands creates a command registry, pre-registering the supplied config types.
func NewCommands(goTypes ...*x.Type) *Commands {
	ret := &Commands{
		types:    x.NewRegistry(),
		builders: make(map[string]types.Builder),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
