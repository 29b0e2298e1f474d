package infrastructure

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// archiveFileName is the per-directory marker file, one "youtube <id>" line
// per archived video. The same format yt-dlp uses for its own archives, so
// directories stay interchangeable with hand-run yt-dlp.
const archiveFileName = "download-archive.txt"

// artifactIDPattern matches the video ID suffix in produced filenames,
// "%(title)s [%(id)s].%(ext)s".
var artifactIDPattern = regexp.MustCompile(`\[([A-Za-z0-9_-]{6,})\]\.[^.]+$`)

var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".webm": true,
	".m4v":  true,
	".mov":  true,
	".avi":  true,
}

// DiskArchiveStore answers "already archived?" from on-disk evidence: the
// archive file's lines unioned with a scan for ID-suffixed media files.
// Directory indexes are built once and cached for the life of the store.
type DiskArchiveStore struct {
	mu    sync.Mutex
	index map[string]map[string]bool // dir -> video IDs
}

// NewDiskArchiveStore creates a new on-disk archive store
func NewDiskArchiveStore() *DiskArchiveStore {
	return &DiskArchiveStore{
		index: make(map[string]map[string]bool),
	}
}

// Exists reports whether the directory already holds the video
func (s *DiskArchiveStore) Exists(dir, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.ensureIndexLocked(dir)
	if err != nil {
		return false, err
	}
	return ids[videoID], nil
}

// Record appends the video to the directory's archive file
func (s *DiskArchiveStore) Record(dir, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(filepath.Join(dir, archiveFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "youtube %s\n", videoID); err != nil {
		return fmt.Errorf("failed to append archive entry: %w", err)
	}

	if ids, ok := s.index[dir]; ok {
		ids[videoID] = true
	}
	return nil
}

// ensureIndexLocked builds the directory's ID index on first use. A missing
// directory or archive file simply means nothing is archived yet.
func (s *DiskArchiveStore) ensureIndexLocked(dir string) (map[string]bool, error) {
	if ids, ok := s.index[dir]; ok {
		return ids, nil
	}

	ids := make(map[string]bool)

	if err := readArchiveFile(filepath.Join(dir, archiveFileName), ids); err != nil {
		return nil, err
	}
	if err := scanArtifacts(dir, ids); err != nil {
		return nil, err
	}

	s.index[dir] = ids
	return ids, nil
}

// readArchiveFile collects IDs from the archive file's "youtube <id>" lines
func readArchiveFile(path string, ids map[string]bool) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read archive file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ids[fields[len(fields)-1]] = true
	}
	return scanner.Err()
}

// scanArtifacts collects IDs from media filenames in the directory, so
// directories populated before the archive file existed still deduplicate
func scanArtifacts(dir string, ids map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".part") || strings.HasSuffix(name, ".ytdl") || strings.HasSuffix(name, ".tmp") {
			continue
		}
		if !mediaExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if m := artifactIDPattern.FindStringSubmatch(name); m != nil {
			ids[m[1]] = true
		}
	}
	return nil
}
