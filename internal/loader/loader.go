// Package loader reads catalog and domain YAML files into registry nodes.
// It validates paths and detects duplicates before anything reaches the
// registry, so an atomic reload either installs a complete tree or nothing.
package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MSubhan6/open-moniker-sub000/catalog"
	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

// ValidationError marks a document that was read but failed parsing or
// validation, as opposed to an I/O failure. Callers use it to report a bad
// catalog distinctly from a broken service.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// catalogFile is the on-disk shape of a catalog document.
type catalogFile struct {
	Catalog []*catalog.Node `yaml:"catalog"`
}

// domainsFile is the on-disk shape of a domains document.
type domainsFile struct {
	Domains []catalog.Domain `yaml:"domains"`
}

// LoadCatalog reads and validates a catalog YAML file.
func LoadCatalog(path string) ([]*catalog.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	nodes, err := ParseCatalog(data)
	if err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("catalog %s: %w", path, err)}
	}
	return nodes, nil
}

// ParseCatalog parses catalog YAML and validates every node.
func ParseCatalog(data []byte) ([]*catalog.Node, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Catalog))
	for i, node := range file.Catalog {
		if node == nil {
			return nil, fmt.Errorf("entry %d is empty", i)
		}
		if err := validateCatalogPath(node.Path); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[node.Path]; dup {
			return nil, fmt.Errorf("duplicate path %q", node.Path)
		}
		seen[node.Path] = struct{}{}
		if node.SourceBinding != nil && node.SourceBinding.SourceType == "" {
			return nil, fmt.Errorf("node %q: source binding missing type", node.Path)
		}
	}
	return file.Catalog, nil
}

// LoadDomains reads a domains YAML file into a lookup map.
func LoadDomains(path string) (catalog.DomainMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domains %s: %w", path, err)
	}
	domains, err := ParseDomains(data)
	if err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("domains %s: %w", path, err)}
	}
	return domains, nil
}

// ParseDomains parses domains YAML keyed by domain name.
func ParseDomains(data []byte) (catalog.DomainMap, error) {
	var file domainsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out := make(catalog.DomainMap, len(file.Domains))
	for i, d := range file.Domains {
		if d.Name == "" {
			return nil, fmt.Errorf("domain %d missing name", i)
		}
		if _, dup := out[d.Name]; dup {
			return nil, fmt.Errorf("duplicate domain %q", d.Name)
		}
		out[d.Name] = d
	}
	return out, nil
}

// validateCatalogPath checks a catalog node path. Catalog paths use "." and
// "/" as hierarchy separators; each "/"-delimited piece must be a valid
// moniker segment.
func validateCatalogPath(path string) error {
	if path == "" {
		return fmt.Errorf("missing path")
	}
	for _, piece := range strings.Split(path, "/") {
		if err := moniker.ValidateSegment(piece); err != nil {
			return fmt.Errorf("path %q: %w", path, err)
		}
	}
	return nil
}
