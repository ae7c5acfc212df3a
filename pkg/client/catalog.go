package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FetchCatalog retrieves the endpoint catalog.
//
// The raw JSON body is returned alongside the decoded catalog so callers can
// validate the payload as received.
func (c *Client) FetchCatalog(ctx context.Context) (*Catalog, []byte, error) {
	raw, err := c.get(ctx, CatalogPath)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := DecodeCatalog(raw)
	if err != nil {
		return nil, raw, err
	}
	return catalog, raw, nil
}

// DecodeCatalog decodes a JSON catalog payload.
func DecodeCatalog(raw []byte) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return &catalog, nil
}

// LoadCatalogFile reads an offline catalog snapshot.
//
// Files ending in .yaml or .yml are decoded as YAML; anything else as JSON.
// The returned bytes are always the JSON encoding of the document.
func LoadCatalogFile(path string) (*Catalog, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, nil, fmt.Errorf("reading catalog file %s: %w", path, err)
		}
	}

	catalog, err := DecodeCatalog(data)
	if err != nil {
		return nil, data, err
	}
	return catalog, data, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting yaml to json: %w", err)
	}
	return out, nil
}
