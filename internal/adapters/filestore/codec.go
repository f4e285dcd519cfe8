package filestore

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"shelfmerge/internal/domain"
)

// Codec converts a collection to and from file bytes
type Codec interface {
	Name() string
	Encode(c *domain.Collection) ([]byte, error)
	Decode(data []byte) (*domain.Collection, error)
}

// JSONCodec writes the collection as indented JSON
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(c *domain.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSONCodec) Decode(data []byte) (*domain.Collection, error) {
	var c domain.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// YAMLCodec writes the collection as YAML
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(c *domain.Collection) ([]byte, error) {
	return yaml.Marshal(c)
}

func (YAMLCodec) Decode(data []byte) (*domain.Collection, error) {
	var c domain.Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CodecFor picks a codec from the file extension, defaulting to JSON
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}
