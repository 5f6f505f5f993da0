package config

import (
	"bytes"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = "# hdrstrip configuration. Save as " + ProjectFile + " next to the files you process.\n\n"

// Generate renders cfg as a TOML document suitable for ProjectFile
func Generate(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return buf.Bytes(), nil
}
