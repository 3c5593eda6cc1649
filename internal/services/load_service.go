package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/kvload/internal/codec"
	"github.com/vvka-141/kvload/internal/files/filesystem"
	"github.com/vvka-141/kvload/internal/record"
	"github.com/vvka-141/kvload/internal/store"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// StoreOpener connects to the store described by a StoreConfig.
// store.Open satisfies it once options are bound.
type StoreOpener func(ctx context.Context, cfg kvload.StoreConfig, logger kvload.Logger) (kvload.Store, error)

// LoadService runs one load per Load call.
// Thread-Safety: Load may be called concurrently; each call owns its file and store handles.
type LoadService struct {
	openStore StoreOpener
	fs        filesystem.FileSystemProvider
	logger    kvload.Logger
}

// NewLoadService creates a LoadService with all dependencies injected.
// Panics on nil dependencies.
func NewLoadService(openStore StoreOpener, fs filesystem.FileSystemProvider, logger kvload.Logger) *LoadService {
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LoadService{openStore: openStore, fs: fs, logger: logger}
}

// Load writes every record of cfg.InputPath into cfg.Store.
//
// The input file is opened before the store is contacted, so a missing file
// never touches the store. Both are closed before Load returns. The returned
// Result is non-nil even on failure and counts the records written.
func (s *LoadService) Load(ctx context.Context, cfg kvload.LoadConfig) (*kvload.Result, error) {
	start := time.Now()
	result := &kvload.Result{
		RunID: uuid.New(),
		Store: store.Redact(cfg.Store.URL),
	}
	defer func() { result.Duration = time.Since(start) }()

	if err := cfg.Validate(); err != nil {
		return result, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	keys, err := record.NewKeyExtractor(cfg.KeyMode, cfg.KeyField)
	if err != nil {
		return result, err
	}
	enc, err := codec.NewEncoder(cfg.Format)
	if err != nil {
		return result, err
	}

	in, err := s.fs.Open(cfg.InputPath)
	if err != nil {
		return result, fmt.Errorf("%w: %w", kvload.ErrInputUnreadable, err)
	}
	defer in.Close()

	dec, err := codec.NewDecoder(cfg.Format, in)
	if err != nil {
		return result, err
	}

	s.logger.Verbose("Run %s: loading %s (%s) into %s", result.RunID, cfg.InputPath, cfg.Format, result.Store)

	st, err := s.openStore(ctx, cfg.Store, s.logger)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := st.Close(); err != nil {
			s.logger.Error("Closing store connection: %v", err)
		}
	}()

	result.Records, err = LoadRecords(ctx, dec, keys, enc, st, s.logger)
	if err != nil {
		return result, fmt.Errorf("loading %s: %w", cfg.InputPath, err)
	}

	s.logger.Verbose("Run %s: %d key-value pairs written", result.RunID, result.Records)
	return result, nil
}
