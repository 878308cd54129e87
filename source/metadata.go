package source

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sicindex/meta"
)

// metadataFile is the on-disk shape of a metadata shard.
type metadataFile struct {
	Records []meta.Record `yaml:"records"`
}

// ReadMetadata reads metadata records from a YAML shard.
func ReadMetadata(r io.Reader) ([]meta.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var file metadataFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return file.Records, nil
}

// LoadMetadata reads metadata records from a YAML shard file.
func LoadMetadata(path string) ([]meta.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}

	var file metadataFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("load metadata %s: %w", path, err)
	}
	return file.Records, nil
}

// LoadMetadataGlob reads and concatenates metadata shards matching the
// given glob patterns. Shards are loaded in sorted path order, so
// records from earlier shards register their lookup keys first.
func LoadMetadataGlob(patterns []string) ([]meta.Record, error) {
	paths, err := ResolveFiles(patterns)
	if err != nil {
		return nil, err
	}

	var records []meta.Record
	for _, path := range paths {
		shard, err := LoadMetadata(path)
		if err != nil {
			return nil, err
		}
		records = append(records, shard...)
	}
	return records, nil
}
