package calculator

import (
	"fmt"
	"io"
	"math/big"

	"github.com/go-ini/ini"
)

// VarsSection is the INI section that holds saved variables.
const VarsSection = "variables"

// SaveVars writes the context's variables to w as an INI document, one key
// per variable in sorted order under the [variables] section.
func (ctx *Context) SaveVars(w io.Writer) error {
	cfg := ini.Empty()
	sec := cfg.Section(VarsSection)
	for _, name := range ctx.Vars() {
		if _, err := sec.NewKey(name, ctx.names[name].String()); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
	}
	_, err := cfg.WriteTo(w)
	return err
}

// LoadVars reads variables saved by SaveVars and assigns each of them in
// order. Variables assigned before an invalid entry stay assigned.
func (ctx *Context) LoadVars(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return fmt.Errorf("failed to read variables: %w", err)
	}
	sec, err := cfg.GetSection(VarsSection)
	if err != nil {
		return fmt.Errorf("no [%s] section", VarsSection)
	}
	for _, key := range sec.Keys() {
		v, ok := new(big.Int).SetString(key.Value(), 10)
		if !ok {
			return fmt.Errorf("variable %s: invalid integer %q", key.Name(), key.Value())
		}
		if err := ctx.Set(key.Name(), v); err != nil {
			return fmt.Errorf("variable %s: %s", key.Name(), detail(err))
		}
	}
	return nil
}
