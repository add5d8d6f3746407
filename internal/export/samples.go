package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/fnviz/internal/plot"
)

// SampleData is the JSON document written by WriteJSON. Undefined samples
// have a null y.
type SampleData struct {
	Expression string       `json:"expression"`
	Ops        string       `json:"ops,omitempty"`
	Bounds     plot.Bounds  `json:"bounds"`
	Count      int          `json:"count"`
	Failed     int          `json:"failed"`
	Samples    []jsonSample `json:"samples"`
}

type jsonSample struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

func NewSampleData(expression, ops string, b plot.Bounds, s plot.Samples) SampleData {
	data := SampleData{
		Expression: expression,
		Ops:        ops,
		Bounds:     b,
		Count:      len(s),
		Failed:     s.Failed(),
		Samples:    make([]jsonSample, len(s)),
	}
	for i, p := range s {
		data.Samples[i].X = p.X
		if !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) {
			y := p.Y
			data.Samples[i].Y = &y
		}
	}
	return data
}

func WriteJSON(w io.Writer, data SampleData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes an x,y header followed by one row per sample. Undefined
// values are written as NaN.
func WriteCSV(w io.Writer, s plot.Samples) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range s {
		row := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
