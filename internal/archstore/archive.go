package archstore

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"qirc/internal/architecture"
	"qirc/internal/qerrors"
)

// archiveVersion is bumped when the archive layout changes.
const archiveVersion = 1

// archiveManifest is the YAML header of an exported archive.
type archiveManifest struct {
	Version       int      `yaml:"version"`
	Architectures []string `yaml:"architectures"`
}

// archiveDoc is the JSON payload that follows the manifest.
type archiveDoc struct {
	Name string                     `json:"name"`
	Arch *architecture.Architecture `json:"arch"`
}

// ExportArchive writes the named architectures to a zstd-compressed
// archive at path. The archive holds a YAML manifest line-delimited
// from one JSON document per architecture.
func (s *Store) ExportArchive(path string, names []string) error {
	docs := make([]archiveDoc, len(names))
	for i, name := range names {
		arch, err := s.Load(name)
		if err != nil {
			return err
		}
		docs[i] = archiveDoc{Name: name, Arch: arch}
	}

	f, err := os.Create(path)
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to create archive %q", path)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to open zstd stream")
	}

	manifest, err := yaml.Marshal(archiveManifest{Version: archiveVersion, Architectures: names})
	if err != nil {
		zw.Close()
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to encode archive manifest")
	}
	if _, err := zw.Write(manifest); err != nil {
		zw.Close()
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to write archive manifest")
	}
	if _, err := io.WriteString(zw, "---\n"); err != nil {
		zw.Close()
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to write archive")
	}

	enc := json.NewEncoder(zw)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			zw.Close()
			return qerrors.Wrap(qerrors.StoreFailure, err, "failed to write architecture %q", doc.Name)
		}
	}
	if err := zw.Close(); err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to finish archive")
	}

	s.logger.Info("archive exported", map[string]interface{}{
		"path":  path,
		"count": len(names),
	})
	return nil
}

// ImportArchive reads a zstd archive and saves every architecture it
// contains, overwriting same-named catalog entries. It returns the
// imported names in archive order.
func (s *Store) ImportArchive(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to open archive %q", path)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "archive %q is not zstd data", path)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to decompress archive %q", path)
	}

	sep := bytes.Index(raw, []byte("\n---\n"))
	if sep < 0 {
		return nil, qerrors.New(qerrors.StoreFailure, "archive %q has no manifest separator", path)
	}
	manifestEnd := sep + 1

	var manifest archiveManifest
	if err := yaml.Unmarshal(raw[:manifestEnd], &manifest); err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "archive %q has a corrupt manifest", path)
	}
	if manifest.Version != archiveVersion {
		return nil, qerrors.New(qerrors.StoreFailure,
			"archive %q has unsupported version %d", path, manifest.Version)
	}

	dec := json.NewDecoder(bytes.NewReader(raw[manifestEnd+4:]))
	var names []string
	for dec.More() {
		var doc archiveDoc
		if err := dec.Decode(&doc); err != nil {
			return nil, qerrors.Wrap(qerrors.StoreFailure, err, "archive %q holds a corrupt document", path)
		}
		if err := s.Save(doc.Name, doc.Arch); err != nil {
			return nil, err
		}
		names = append(names, doc.Name)
	}
	return names, nil
}
