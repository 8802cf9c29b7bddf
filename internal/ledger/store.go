package ledger

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/resultado/dre/internal/model"
)

// FileInfo describes a CSV file in the ledger directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Entity is a reporting entity seen in the ledger.
type Entity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// ConsolidatedName labels a scope spanning several entities.
const ConsolidatedName = "Consolidado"

// Scan returns the CSV files in dir, sorted by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !isLedgerFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func isLedgerFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv") && !strings.HasPrefix(name, ".")
}

// Store holds the ledger lines of a directory in memory.
type Store struct {
	dir      string
	format   string
	registry *Registry
	logger   *slog.Logger

	mu       sync.RWMutex
	lines    []model.LedgerLine
	entities map[string]Entity
}

// NewStore creates a store over dir. format is a registered parser name
// or FormatAuto.
func NewStore(dir, format string, logger *slog.Logger) *Store {
	if format == "" {
		format = FormatAuto
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:      dir,
		format:   format,
		registry: DefaultRegistry(),
		logger:   logger,
		entities: make(map[string]Entity),
	}
}

// Load parses every CSV file in the directory concurrently and replaces
// the store contents. On error the previous contents are kept.
func (s *Store) Load(ctx context.Context) error {
	if s.format != FormatAuto && s.registry.Get(s.format) == nil {
		return fmt.Errorf("unknown ledger format %q (want %s or one of %v)", s.format, FormatAuto, s.registry.Formats())
	}

	files, err := Scan(s.dir)
	if err != nil {
		return err
	}

	results := make([][]model.LedgerLine, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := s.parseFile(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", f.Name, err)
			}
			results[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []model.LedgerLine
	entities := make(map[string]Entity)
	for _, lines := range results {
		for _, l := range lines {
			if _, ok := entities[l.EntityID]; !ok && l.EntityID != "" {
				entities[l.EntityID] = Entity{ID: l.EntityID, Name: l.EntityName, Region: l.Region}
			}
		}
		all = append(all, lines...)
	}

	s.mu.Lock()
	s.lines = all
	s.entities = entities
	s.mu.Unlock()

	s.logger.Info("ledger loaded", "dir", s.dir, "files", len(files), "lines", len(all), "entities", len(entities))
	return nil
}

func (s *Store) parseFile(f FileInfo) ([]model.LedgerLine, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	parser := s.registry.Get(s.format)
	if parser == nil {
		header, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
		parser = s.registry.Detect(header)
	}
	s.logger.Debug("parsing ledger file", "file", f.Name, "format", parser.Format(), "bytes", f.Size)
	return parser.Parse(bytes.NewReader(data))
}

// Entities returns the known entities sorted by ID.
func (s *Store) Entities() []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lines returns the lines of the given entities. No IDs selects every
// entity. The result is a copy.
func (s *Store) Lines(entityIDs []string) []model.LedgerLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := idSet(entityIDs)
	var out []model.LedgerLine
	for _, l := range s.lines {
		if want == nil || want[l.EntityID] {
			out = append(out, l)
		}
	}
	return out
}

// Scope describes the entity selection. Unknown IDs are dropped; when
// none remain the scope has no entities.
func (s *Store) Scope(entityIDs []string) model.Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Entity
	want := idSet(entityIDs)
	for id, e := range s.entities {
		if want == nil || want[id] {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if len(matched) == 1 {
		e := matched[0]
		return model.Scope{Kind: model.ScopeSingle, EntityIDs: []string{e.ID}, EntityName: e.Name, Region: e.Region}
	}

	sc := model.Scope{Kind: model.ScopeConsolidated, EntityName: ConsolidatedName}
	if len(entityIDs) == 1 {
		sc.Kind = model.ScopeSingle
		sc.EntityName = ""
	}
	for i, e := range matched {
		sc.EntityIDs = append(sc.EntityIDs, e.ID)
		if i == 0 {
			sc.Region = e.Region
		} else if sc.Region != e.Region {
			sc.Region = ""
		}
	}
	return sc
}

func idSet(ids []string) map[string]bool {
	var set map[string]bool
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if set == nil {
			set = make(map[string]bool)
		}
		set[id] = true
	}
	return set
}
