package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ServerName is the key our entry is installed under in every platform's
// server mapping.
const ServerName = "arbitrum"

// Document is the parsed contents of a platform config file. Unknown keys
// round-trip unmodified; only configKey is ever touched.
type Document = map[string]any

// Codec reads and mutates config files of one serialization format.
//
// Read treats a missing or unparsable file as an empty document: a corrupt
// config must not block installing a fresh entry. The flip side is that the
// next write replaces whatever unparsable content was there; callers that
// want to warn about this first can check ReadStrict.
type Codec interface {
	Format() Format
	Read(path string) Document
	ReadStrict(path string) (Document, error)
	Write(path string, doc Document) error
	AddServerEntry(path string, configKey string) error
	RemoveServerEntry(path string, configKey string) (bool, error)
	IsServerInstalled(path string, configKey string) bool
}

// marshaller is the format-specific half of a codec.
type marshaller interface {
	Format() Format
	Marshal(doc Document) ([]byte, error)
	Unmarshal(data []byte) (Document, error)
}

// codec implements Codec on top of a marshaller; the add/remove/installed
// semantics are identical across formats.
type codec struct {
	m marshaller
}

// CodecFor returns the codec handling the given format.
func CodecFor(format Format) Codec {
	switch format {
	case FormatTOML:
		return &codec{m: tomlMarshaller{}}
	default:
		return &codec{m: jsonMarshaller{}}
	}
}

func (c *codec) Format() Format {
	return c.m.Format()
}

// Read returns the parsed document, or an empty one when the file is
// missing or does not parse.
func (c *codec) Read(path string) Document {
	doc, err := c.ReadStrict(path)
	if err != nil {
		return Document{}
	}

	return doc
}

// ReadStrict parses the file, reporting missing and malformed files as
// errors so callers can distinguish them when they care.
func (c *codec) ReadStrict(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	doc, err := c.m.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	return doc, nil
}

// Write serializes the full document over the file, creating parent
// directories as needed.
func (c *codec) Write(path string, doc Document) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", configDir, err)
	}

	data, err := c.m.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialize config file %q: %w", path, err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file %q: %w", path, err)
	}

	return nil
}

// AddServerEntry writes our entry under doc[configKey][ServerName],
// overwriting any previous entry in full. A configKey value that is not a
// mapping is replaced.
func (c *codec) AddServerEntry(path string, configKey string) error {
	doc := c.Read(path)

	servers, ok := doc[configKey].(map[string]any)
	if !ok {
		servers = map[string]any{}
		doc[configKey] = servers
	}

	servers[ServerName] = NewServerEntry(c.m.Format())

	return c.Write(path, doc)
}

// RemoveServerEntry deletes our entry. It reports false without touching
// the filesystem when the file, key or entry is absent. When the entry was
// the last one under configKey, the emptied mapping is removed as well.
func (c *codec) RemoveServerEntry(path string, configKey string) (bool, error) {
	doc, err := c.ReadStrict(path)
	if err != nil {
		return false, nil
	}

	servers, ok := doc[configKey].(map[string]any)
	if !ok {
		return false, nil
	}

	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}

	delete(servers, ServerName)

	if len(servers) == 0 {
		delete(doc, configKey)
	}

	if err := c.Write(path, doc); err != nil {
		return false, err
	}

	return true, nil
}

// IsServerInstalled reports whether our entry is present. Any failure,
// including a parse failure, reads as false.
func (c *codec) IsServerInstalled(path string, configKey string) bool {
	doc, err := c.ReadStrict(path)
	if err != nil {
		return false
	}

	servers, ok := doc[configKey].(map[string]any)
	if !ok {
		return false
	}

	_, exists := servers[ServerName]

	return exists
}
