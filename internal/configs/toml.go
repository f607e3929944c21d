package configs

import (
	"io"

	"github.com/BurntSushi/toml"
)

// LoadTOML decodes a TOML file into data. Keys absent from the file leave
// the corresponding fields of data untouched.
func LoadTOML(filePath string, data interface{}) (toml.MetaData, error) {
	return toml.DecodeFile(filePath, data)
}

// WriteTOML encodes data as TOML to w.
func WriteTOML(w io.Writer, data interface{}) error {
	return toml.NewEncoder(w).Encode(data)
}
