package ingest

import (
	"io"

	"github.com/go-gota/gota/dataframe"
)

// Parser reads energy statistics from a source into a typed dataframe.
type Parser interface {
	Load(r io.Reader) (dataframe.DataFrame, error)
}
