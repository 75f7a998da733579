package mock

import "github.com/fwojciec/scanhub"

var _ scanhub.Converter = (*Converter)(nil)

// Converter is a mock implementation of scanhub.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
