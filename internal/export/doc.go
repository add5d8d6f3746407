// Package export writes plots and sample sets to files: PNG, SVG and
// animated GIF images, ASCII charts, CSV and JSON.
package export
