// Package backup snapshots file-based stores into a rotating backups
// directory next to the store. SQLite stores are copied with VACUUM INTO and
// JSON stores with a plain file copy.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// ErrUnsupportedStore is returned for stores that do not live in a local file.
var ErrUnsupportedStore = errors.New("backups are only supported for SQLite and JSON stores")

// Info describes one backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int // orders names sharing a timestamp
}

func (i Info) Name() string { return filepath.Base(i.Path) }

type format struct {
	suffix string
	copy   func(src, dst string) error
	verify func(path string) error
}

var (
	sqliteFormat = format{suffix: constants.BackupFileSuffix, copy: vacuumInto, verify: verifySQLite}
	jsonFormat   = format{suffix: ".json", copy: copyFile, verify: verifyJSON}
)

// Manager handles backup operations for one store file
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	format    format
	now       func() time.Time
}

// NewManager returns a manager for the store at dbPath. Connection strings
// are rejected with ErrUnsupportedStore.
func NewManager(dbPath string) (*Manager, error) {
	if strings.Contains(dbPath, "://") {
		return nil, ErrUnsupportedStore
	}
	f := sqliteFormat
	if strings.EqualFold(filepath.Ext(dbPath), ".json") {
		f = jsonFormat
	}
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		format:    f,
		now:       time.Now,
	}, nil
}

func (m *Manager) Dir() string { return m.backupDir }

func (m *Manager) Keep() int { return m.keep }

// Create writes a new backup and prunes the oldest ones beyond the limit.
func (m *Manager) Create() (Info, error) {
	info, err := m.create()
	if err != nil {
		return Info{}, err
	}
	if _, err := m.Prune(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) create() (Info, error) {
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return Info{}, fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	path, ts, err := m.nextPath()
	if err != nil {
		return Info{}, err
	}
	if err := m.format.copy(m.dbPath, path); err != nil {
		return Info{}, fmt.Errorf("failed to backup database: %w", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	logger.Debug("Backup created", "path", path)
	return Info{Path: path, Timestamp: ts, Size: st.Size()}, nil
}

// nextPath picks a free file name: minute precision first, then seconds,
// then seconds with a counter.
func (m *Manager) nextPath() (string, time.Time, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.format.suffix)
	}

	if p := name(now.Format(minuteLayout)); !exists(p) {
		return p, now.Truncate(time.Minute), nil
	}
	stamp := now.Format(secondLayout)
	if p := name(stamp); !exists(p) {
		return p, now.Truncate(time.Second), nil
	}
	for i := 1; i <= 100; i++ {
		if p := name(stamp + "-" + strconv.Itoa(i)); !exists(p) {
			return p, now.Truncate(time.Second), nil
		}
	}
	return "", time.Time{}, errors.New("failed to generate unique backup filename")
}

// List returns the backups of this store's format, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var out []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseName(entry.Name(), m.format.suffix)
		if !ok {
			continue
		}
		st, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      st.Size(),
			seq:       seq,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].seq > out[j].seq
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// parseName extracts the timestamp from routinely-<stamp>[-N]<suffix>. The
// sequence is -1 for minute stamps, 0 for second stamps and N for counters.
func parseName(name, suffix string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, suffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), suffix)

	seq := 0
	if strings.Count(stamp, "-") == 2 {
		i := strings.LastIndex(stamp, "-")
		n, err := strconv.Atoi(stamp[i+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		stamp, seq = stamp[:i], n
	}
	if ts, err := time.ParseInLocation(minuteLayout, stamp, time.Local); err == nil && seq == 0 {
		return ts, -1, true
	}
	if ts, err := time.ParseInLocation(secondLayout, stamp, time.Local); err == nil {
		return ts, seq, true
	}
	return time.Time{}, 0, false
}

// Prune removes backups beyond the retention limit and reports how many were
// removed.
func (m *Manager) Prune() (int, error) {
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return removed, fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		removed++
	}
	return removed, nil
}

// Resolve turns a user-supplied backup reference into a path. Absolute
// paths are used as is; relative ones are tried against the working
// directory and then the backup directory.
func (m *Manager) Resolve(ref string) (string, error) {
	if filepath.IsAbs(ref) {
		if !exists(ref) {
			return "", fmt.Errorf("backup file not found: %s", ref)
		}
		return ref, nil
	}
	if exists(ref) {
		return filepath.Abs(ref)
	}
	if p := filepath.Join(m.backupDir, ref); exists(p) {
		return p, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", m.backupDir)
}

// Restore replaces the store file with the backup at path. The current
// store is backed up first; its path is returned when one was made. The
// store must be closed by the caller.
func (m *Manager) Restore(path string) (string, error) {
	if !exists(path) {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := m.format.verify(path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var pre string
	if exists(m.dbPath) {
		info, err := m.create()
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		pre = info.Path
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return pre, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return pre, fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Database restored", "from", path)
	return pre, nil
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	return json.Unmarshal(data, &doc)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
