package export

import "errors"

var (
	ErrFormat  = errors.New("export: unsupported format")
	ErrNoData  = errors.New("export: nothing to plot")
	ErrSurface = errors.New("export: surface cannot be encoded")
)
