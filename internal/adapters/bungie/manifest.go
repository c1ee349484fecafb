package bungie

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

const manifestPath = "/Platform/Destiny2/Manifest/"

// ManifestService implements ports.ManifestService: a versioned cache of
// the game-data manifest, refreshed from Bungie only when the remote
// version moves. Every pipeline step is published to subscribers.
type ManifestService struct {
	client *Client
	store  ports.ManifestStore
	log    *zap.Logger

	mu     sync.Mutex
	cached *domain.Manifest
	subs   []chan domain.ManifestStage
}

// NewManifestService creates the manifest service over the given cache.
func NewManifestService(client *Client, store ports.ManifestStore, log *zap.Logger) *ManifestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ManifestService{client: client, store: store, log: log}
}

// Subscribe returns a channel of stage notifications. Sends never block;
// a slow consumer misses stages rather than stalling the pipeline.
func (s *ManifestService) Subscribe() <-chan domain.ManifestStage {
	ch := make(chan domain.ManifestStage, 16)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *ManifestService) publish(stage domain.ManifestStage) {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- stage:
		default:
		}
	}
}

// Cached returns the last manifest this service handed out, without any
// network traffic. Nil before the first successful GetManifest.
func (s *ManifestService) Cached() *domain.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}

// GetManifest returns the current manifest: the local cache when its
// version still matches Bungie's, otherwise a fresh fetch-parse-store pass.
func (s *ManifestService) GetManifest(ctx context.Context) (*domain.Manifest, error) {
	m, err := s.getManifest(ctx)
	if err != nil {
		s.publish(domain.StageError)
		return nil, err
	}
	s.mu.Lock()
	s.cached = m
	s.mu.Unlock()
	s.publish(domain.StageReady)
	return m, nil
}

func (s *ManifestService) getManifest(ctx context.Context) (*domain.Manifest, error) {
	s.publish(domain.StageCheckVersion)
	var info manifestInfo
	if err := s.client.get(ctx, manifestPath, "", &info); err != nil {
		return nil, fmt.Errorf("check manifest version: %w", err)
	}

	cachedVersion, err := s.store.CachedVersion()
	if err != nil {
		s.log.Warn("read cached manifest version", zap.Error(err))
	}
	if cachedVersion == info.Version && cachedVersion != "" {
		s.publish(domain.StageLoadCached)
		m, err := s.store.Load()
		if err == nil {
			return m, nil
		}
		// Corrupt cache: fall through to a remote fetch.
		s.log.Warn("cached manifest unreadable, refetching", zap.Error(err))
	}

	s.publish(domain.StageFetchRemote)
	classPath, ok := info.JSONWorldComponentContentPaths["en"]["DestinyClassDefinition"]
	if !ok {
		return nil, fmt.Errorf("manifest %s has no class definition path", info.Version)
	}
	var classes map[string]classDefinition
	if err := s.client.getJSON(ctx, classPath, &classes); err != nil {
		return nil, fmt.Errorf("fetch class definitions: %w", err)
	}

	s.publish(domain.StageParse)
	m := &domain.Manifest{
		Version:    info.Version,
		ClassNames: make(map[uint32]string, len(classes)),
	}
	for _, def := range classes {
		if def.Redacted {
			continue
		}
		m.ClassNames[def.Hash] = def.DisplayProperties.Name
	}

	s.publish(domain.StageStore)
	if err := s.store.Save(m); err != nil {
		// A failed cache write is not fatal, the manifest is already parsed.
		s.log.Warn("store manifest", zap.Error(err))
	}

	s.log.Info("manifest refreshed",
		zap.String("version", info.Version),
		zap.Int("classes", len(m.ClassNames)))
	return m, nil
}
