package platform

import (
	"bytes"

	toml "github.com/pelletier/go-toml/v2"
)

type tomlMarshaller struct{}

func (tomlMarshaller) Format() Format {
	return FormatTOML
}

func (tomlMarshaller) Unmarshal(data []byte) (Document, error) {
	doc := Document{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (tomlMarshaller) Marshal(doc Document) ([]byte, error) {
	return toml.Marshal(doc)
}
