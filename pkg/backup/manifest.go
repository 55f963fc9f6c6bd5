package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the per-bucket record file.
const ManifestFileName = "manifest.toml"

type manifest struct {
	Records []types.BackupRecord `toml:"records"`
}

func readManifest(fs types.FS, bucketDir string) (*manifest, error) {
	data, err := fs.ReadFile(filepath.Join(bucketDir, ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &manifest{}, nil
		}
		return nil, err
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "corrupt backup manifest in %s", bucketDir)
	}
	return &m, nil
}

func writeManifest(fs types.FS, bucketDir string, m *manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(fs, filepath.Join(bucketDir, ManifestFileName), data, 0600)
}

// sequence extracts the per-bucket sequence number from a record ID.
func sequence(id string) int {
	i := strings.LastIndex(id, "/")
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}

// sortNewestFirst orders records by creation time, then bucket, then
// sequence, all descending.
func sortNewestFirst(records []types.BackupRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Bucket != b.Bucket {
			return a.Bucket > b.Bucket
		}
		return sequence(a.ID) > sequence(b.ID)
	})
}
