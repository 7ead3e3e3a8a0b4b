package types

import "fmt"

func NewCommandNotFoundError(name string) error {
	return fmt.Errorf("command %v not found", name)
}

func NewInvalidConfigError(in interface{}) error {
	return fmt.Errorf("invalid config %T", in)
}
