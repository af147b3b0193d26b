package beep

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// TrackFromFile builds a catalog track for a user-picked local file,
// reading title and artist from embedded metadata when present. Files
// without readable tags fall back to the file name; metadata failures
// are not errors.
func TrackFromFile(path string) (domain.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Track{}, domain.NewPlaybackError("open", path, err.Error(), domain.ErrPlaybackFailed)
	}
	defer func() {
		_ = f.Close()
	}()

	track := domain.Track{
		ID:            localTrackID(path),
		Title:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourceLocator: path,
	}

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return track, nil
	}
	if title := meta.Title(); title != "" {
		track.Title = title
	}
	track.Artist = meta.Artist()

	return track, nil
}

// localTrackID derives a stable catalog ID from the file path.
func localTrackID(path string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("local-%08x", h.Sum32())
}
