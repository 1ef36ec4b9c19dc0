package config

import (
	"os"
	"path/filepath"

	"oewsq/internal/files"
	"oewsq/pkg/contracts/domain"
)

// Default file names of the OEWS May 2024 release downloads.
const (
	FileNational  = "national_M2024_dl.xlsx"
	FileState     = "state_M2024_dl.xlsx"
	FileMSA       = "MSA_M2024_dl.xlsx"
	FileNatSector = "natsector_M2024_dl.xlsx"
)

var defaultSources = map[domain.TableKind]string{
	domain.KindNational:  FileNational,
	domain.KindState:     FileState,
	domain.KindMSA:       FileMSA,
	domain.KindNatSector: FileNatSector,
}

// SourceFile returns the file name configured for kind. The second return
// value is false for kinds outside the four known tables.
func (d DataConfig) SourceFile(kind domain.TableKind) (string, bool) {
	if name, ok := d.Sources[string(kind)]; ok && name != "" {
		return name, true
	}
	name, ok := defaultSources[kind]
	return name, ok
}

// SourcePath returns the resolved on-disk location of the source table for
// kind. The path is not guaranteed to exist; a missing file is reported by
// the reader at open time.
func (d DataConfig) SourcePath(kind domain.TableKind) (string, bool) {
	name, ok := d.SourceFile(kind)
	if !ok {
		return "", false
	}
	return d.Resolve(filepath.Join(d.Dir, name)), true
}

// Resolve maps a logical source path to a concrete one:
//  1. absolute paths are returned as-is;
//  2. a path that exists relative to the working directory wins;
//  3. otherwise the base name is looked up in the fallback directory;
//  4. otherwise the working-directory-relative candidate is returned
//     unconditionally and the "not found" failure is left to the reader.
func (d DataConfig) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	if _, err := os.Stat(path); err == nil {
		return path
	}

	if d.FallbackDir != "" {
		disc := files.NewDiscovery("")
		if info, ok := disc.FindByName(d.FallbackDir, filepath.Base(path)); ok {
			return info.Path
		}
	}

	return path
}
