package storage

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/giveaway-ledger/internal/config"
	"github.com/tbourn/giveaway-ledger/internal/gitsync"
)

// Open builds the Storage selected by cfg, once, at startup. The document
// store and the relational store are used when configured and reachable; a
// backend that cannot be reached is left out with a warning. The local file
// is always last, optionally mirrored to git.
func Open(ctx context.Context, cfg config.StorageConfig, git config.GitSyncConfig) *Storage {
	var backends []Backend

	if cfg.MongoURI != "" {
		mb, err := DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.Timeout)
		if err != nil {
			log.Warn().Err(err).Msg("mongodb unavailable, continuing without it")
		} else {
			backends = append(backends, mb)
		}
	}

	if cfg.DatabaseURL != "" {
		sb, err := OpenSQL(ctx, cfg.DatabaseURL, cfg.Timeout)
		if err != nil {
			log.Warn().Err(err).Msg("sql database unavailable, continuing without it")
		} else {
			backends = append(backends, sb)
		}
	}

	var file Backend = NewFileBackend(cfg.DataFile, cfg.BackupSuffix)
	if git.Enabled {
		file = gitsync.Wrap(file, gitsync.NewRepository(git.Dir), gitsync.Options{
			Path:     cfg.DataFile,
			Remote:   git.Remote,
			Branch:   git.Branch,
			Interval: git.Interval,
		})
	}
	backends = append(backends, file)

	s := New(cfg.Timeout, backends...)
	log.Info().Strs("backends", s.Backends()).Msg("storage ready")
	return s
}
