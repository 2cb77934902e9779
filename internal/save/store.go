package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/sim"
)

const (
	primaryName = "save.json"
	backupName  = "save.json.bak"
	tmpName     = "save.json.tmp"
	metaName    = "meta.json"
)

// Meta is the small independent record updated last in the write sequence.
// It exists so "is there a resumable run" can be answered without decoding
// the full envelope.
type Meta struct {
	Schema  int    `json:"schema"`
	SavedAt int64  `json:"saved_at"`
	Wave    uint32 `json:"wave"`
	Score   uint64 `json:"score"`
}

// FileStore persists run envelopes with staged, crash-safe writes and a
// single backup slot.
type FileStore struct {
	dir string
	log *log.Logger
}

// NewFileStore opens (creating if needed) a save directory.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create dir: %w", err)
	}
	return &FileStore{dir: dir, log: logger}, nil
}

// Save writes a checkpoint. The sequence is: serialize → write tmp →
// read-back verify → rotate primary to backup → commit tmp as primary →
// update meta last. A failure at any step leaves the previously committed
// primary and backup untouched; the caller retries at the next checkpoint.
func (s *FileStore) Save(st *sim.State, tun *config.Tuning) error {
	now := time.Now().Unix()
	createdAt := s.createdAt(now)

	env, err := Encode(st, tun, createdAt, now)
	if err != nil {
		return err
	}
	data, err := Marshal(env)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, tmpName)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return s.classify(fmt.Errorf("save: write tmp: %w", err))
	}

	// Read back and re-verify before touching the committed slots.
	back, err := os.ReadFile(tmp)
	if err != nil {
		return fmt.Errorf("save: read back: %w", err)
	}
	checkEnv, err := Unmarshal(back)
	if err != nil || payloadDigest(checkEnv.Payload) != env.Digest {
		os.Remove(tmp)
		return fmt.Errorf("%w: read-back verify", ErrIntegrityMismatch)
	}

	primary := filepath.Join(s.dir, primaryName)
	if _, err := os.Stat(primary); err == nil {
		if err := os.Rename(primary, filepath.Join(s.dir, backupName)); err != nil {
			return fmt.Errorf("save: rotate backup: %w", err)
		}
	}
	if err := os.Rename(tmp, primary); err != nil {
		return fmt.Errorf("save: commit: %w", err)
	}

	if err := s.writeMeta(Meta{Schema: env.Schema, SavedAt: now, Wave: st.WaveIndex, Score: st.Score}); err != nil {
		// Meta is advisory; the envelope is already committed.
		s.log.Warn("meta update failed", "err", err)
	}
	return nil
}

// Load reads the latest checkpoint, falling back to the backup slot when the
// primary is missing or fails decode, integrity or validation.
func (s *FileStore) Load(tun *config.Tuning) (*sim.State, error) {
	st, primaryErr := s.loadSlot(primaryName, tun)
	if primaryErr == nil {
		return st, nil
	}
	if !errors.Is(primaryErr, ErrNotFound) {
		s.log.Warn("primary save rejected, trying backup", "err", primaryErr)
	}

	st, backupErr := s.loadSlot(backupName, tun)
	if backupErr == nil {
		return st, nil
	}
	if errors.Is(primaryErr, ErrNotFound) && errors.Is(backupErr, ErrNotFound) {
		return nil, ErrNotFound
	}
	return nil, primaryErr
}

// Meta reads the advisory metadata record.
func (s *FileStore) Meta() (Meta, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metaName))
	if err != nil {
		if os.IsNotExist(err) {
			return Meta{}, ErrNotFound
		}
		return Meta{}, fmt.Errorf("save: read meta: %w", err)
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, fmt.Errorf("%w: meta: %v", ErrDecodeFailed, err)
	}
	return m, nil
}

// Clear removes all save slots, for a finished run.
func (s *FileStore) Clear() {
	for _, name := range []string{primaryName, backupName, tmpName, metaName} {
		os.Remove(filepath.Join(s.dir, name))
	}
}

func (s *FileStore) loadSlot(name string, tun *config.Tuning) (*sim.State, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save: read %s: %w", name, err)
	}
	env, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Decode(env, tun)
}

// createdAt preserves the run's original creation time across checkpoints.
func (s *FileStore) createdAt(now int64) int64 {
	data, err := os.ReadFile(filepath.Join(s.dir, primaryName))
	if err != nil {
		return now
	}
	env, err := Unmarshal(data)
	if err != nil || env.CreatedAt == 0 {
		return now
	}
	return env.CreatedAt
}

func (s *FileStore) writeMeta(m Meta) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, metaName), data, 0o644)
}

func (s *FileStore) classify(err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return err
}
