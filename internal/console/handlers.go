package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// kindArg validates the class name in args[0].
func kindArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", ErrClassMissing
	}
	if !types.IsKind(args[0]) {
		return "", types.ErrUnknownKind
	}
	return args[0], nil
}

// lookup validates "<kind> <id>" and fetches the entity.
func (c *Console) lookup(args []string) (types.Entity, error) {
	kind, err := kindArg(args)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 || args[1] == "" {
		return nil, ErrIDMissing
	}
	return c.store.Get(kind, args[1])
}

func (c *Console) create(args []string) error {
	kind, err := kindArg(args)
	if err != nil {
		return err
	}
	e, err := types.New(kind)
	if err != nil {
		return err
	}
	c.store.New(e)
	if err := c.store.Save(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, e.Base().ID)
	return nil
}

func (c *Console) show(args []string) error {
	e, err := c.lookup(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, types.Describe(e))
	return nil
}

func (c *Console) destroy(args []string) error {
	if _, err := c.lookup(args); err != nil {
		return err
	}
	if err := c.store.Delete(args[0], args[1]); err != nil {
		return err
	}
	return c.store.Save()
}

func (c *Console) all(args []string) error {
	kind := ""
	if len(args) > 0 {
		var err error
		if kind, err = kindArg(args); err != nil {
			return err
		}
	}
	entities := c.store.Filter(kind)
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = strconv.Quote(types.Describe(e))
	}
	fmt.Fprintf(c.out, "[%s]\n", strings.Join(out, ", "))
	return nil
}

func (c *Console) update(args []string) error {
	e, err := c.lookup(args)
	if err != nil {
		return err
	}
	if len(args) < 3 || args[2] == "" {
		return ErrAttrMissing
	}
	if len(args) < 4 {
		return ErrValueMissing
	}
	if err := types.SetAttribute(e, args[2], args[3]); err != nil {
		return err
	}
	return c.store.Save()
}

func (c *Console) count(args []string) error {
	kind, err := kindArg(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.store.Count(kind))
	return nil
}
