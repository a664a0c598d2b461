package platform

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// jsonMarshaller handles the JSON platforms. Reads go through a JSONC
// translation first because several editors accept comments and trailing
// commas in their config files.
type jsonMarshaller struct{}

func (jsonMarshaller) Format() Format {
	return FormatJSON
}

func (jsonMarshaller) Unmarshal(data []byte) (Document, error) {
	doc := Document{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (jsonMarshaller) Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
