package catalog

import (
	"log/slog"
	"sync"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// Store holds the current catalog snapshot and swaps it on reload.
type Store struct {
	itemsPath string
	boxesPath string
	logger    *slog.Logger

	mu      sync.RWMutex
	current *model.Catalog
}

// NewStore creates an empty store reading from the given files.
func NewStore(itemsPath, boxesPath string, logger *slog.Logger) *Store {
	return &Store{
		itemsPath: itemsPath,
		boxesPath: boxesPath,
		logger:    logger,
		current:   &model.Catalog{Boxes: map[model.BoxSize]model.BoxTemplate{}},
	}
}

// Reload parses both files again. The previous snapshot stays in place when parsing fails.
func (s *Store) Reload() (*model.Catalog, error) {
	cat, err := LoadFiles(s.itemsPath, s.boxesPath)
	if err != nil {
		s.logger.Error("catalog load failed", slog.String("error", err.Error()))
		return nil, err
	}
	for _, size := range model.BoxSizes {
		box, ok := cat.Boxes[size]
		if !ok {
			s.logger.Warn("box size missing from catalog", slog.String("size", string(size)))
			continue
		}
		if len(box.Contents) != size.Slots() {
			s.logger.Warn("box contents do not fill its slots",
				slog.String("size", string(size)),
				slog.Int("contents", len(box.Contents)),
				slog.Int("slots", size.Slots()))
		}
	}

	s.mu.Lock()
	s.current = cat
	s.mu.Unlock()

	s.logger.Info("catalog loaded", slog.Int("items", len(cat.Items)), slog.Int("boxes", len(cat.Boxes)))
	return cat, nil
}

// Current returns the latest snapshot. Snapshots are never mutated.
func (s *Store) Current() *model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
