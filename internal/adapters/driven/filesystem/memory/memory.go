// Package memory provides an in-memory file system for testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
)

// Ensure FileSystem implements the interface.
var _ driven.SchemeFileSystem = (*FileSystem)(nil)

// maxLinkHops bounds link resolution.
const maxLinkHops = 64

type node struct {
	dir     bool
	data    []byte
	modTime time.Time
	target  domain.Locator
}

// FileSystem is an in-memory tree addressed by locators of any scheme.
// Parent directories are created implicitly. Links make cyclic trees
// possible. Copies land in memory under the file:// locator of dst.
type FileSystem struct {
	mu        sync.RWMutex
	nodes     map[domain.Locator]*node
	failures  map[domain.Locator]error
	listCalls int
	copyCalls int
}

// New creates an empty file system.
func New() *FileSystem {
	return &FileSystem{
		nodes:    make(map[domain.Locator]*node),
		failures: make(map[domain.Locator]error),
	}
}

// Schemes returns the schemes handled by this adapter.
func (f *FileSystem) Schemes() []string {
	return []string{domain.SchemeFile, domain.SchemeS3, domain.SchemeContent}
}

// AddDir creates a directory and its parents.
func (f *FileSystem) AddDir(loc domain.Locator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdirs(loc)
}

// AddFile creates a file and its parents.
func (f *FileSystem) AddFile(loc domain.Locator, data []byte, modTime time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdirs(parent(loc))
	f.nodes[clean(loc)] = &node{data: data, modTime: modTime}
}

// Link creates a directory entry named name inside dir pointing at target.
func (f *FileSystem) Link(dir domain.Locator, name string, target domain.Locator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdirs(dir)
	f.nodes[clean(dir.Join(name))] = &node{target: clean(target)}
}

// FailList makes List of dir return err.
func (f *FileSystem) FailList(dir domain.Locator, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[clean(dir)] = err
}

// ListCalls returns how many times List was called.
func (f *FileSystem) ListCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listCalls
}

// CopyCalls returns how many copies were performed.
func (f *FileSystem) CopyCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.copyCalls
}

// Exists reports whether loc resolves to a node.
func (f *FileSystem) Exists(loc domain.Locator) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, _, ok := f.resolve(loc)
	return ok
}

// List returns the children of dir sorted by name.
func (f *FileSystem) List(_ context.Context, dir domain.Locator) ([]domain.Entry, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	f.mu.RLock()
	defer f.mu.RUnlock()

	if err, ok := f.failures[clean(dir)]; ok {
		return nil, err
	}
	resolved, n, ok := f.resolve(dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
	}
	if !n.dir {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDirectory, dir)
	}

	prefix := string(resolved) + "/"
	var names []string
	for loc := range f.nodes {
		rest, found := strings.CutPrefix(string(loc), prefix)
		if found && rest != "" && !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)

	entries := make([]domain.Entry, 0, len(names))
	for _, name := range names {
		child := clean(dir.Join(name))
		_, cn, ok := f.resolve(child)
		if !ok {
			continue
		}
		entries = append(entries, toEntry(child, name, cn))
	}
	return entries, nil
}

// Stat describes loc.
func (f *FileSystem) Stat(_ context.Context, loc domain.Locator) (*domain.Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, n, ok := f.resolve(loc)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, loc)
	}
	entry := toEntry(clean(loc), loc.Base(), n)
	return &entry, nil
}

// CopyToPath copies src to the file:// locator of dst.
func (f *FileSystem) CopyToPath(_ context.Context, src domain.Locator, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, n, ok := f.resolve(src)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, src)
	}
	if n.dir {
		return fmt.Errorf("copy %s: %w", src, domain.ErrInvalidInput)
	}
	f.copyCalls++
	dest := clean(domain.FileLocator(dst))
	f.mkdirs(parent(dest))
	data := append([]byte(nil), n.data...)
	f.nodes[dest] = &node{data: data, modTime: n.modTime}
	return nil
}

// Remove deletes the file at loc.
func (f *FileSystem) Remove(_ context.Context, loc domain.Locator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resolved, n, ok := f.resolve(loc)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, loc)
	}
	if n.dir {
		return fmt.Errorf("remove %s: %w", loc, domain.ErrInvalidInput)
	}
	delete(f.nodes, resolved)
	return nil
}

// resolve follows links, including links on any ancestor of loc.
func (f *FileSystem) resolve(loc domain.Locator) (domain.Locator, *node, bool) {
	cur := clean(loc)
	for hop := 0; hop < maxLinkHops; hop++ {
		if n, ok := f.nodes[cur]; ok {
			if n.target == "" {
				return cur, n, true
			}
			cur = n.target
			continue
		}
		rewritten, ok := f.rewriteLinkedAncestor(cur)
		if !ok {
			return "", nil, false
		}
		cur = rewritten
	}
	return "", nil, false
}

func (f *FileSystem) rewriteLinkedAncestor(loc domain.Locator) (domain.Locator, bool) {
	s := string(loc)
	for i := strings.LastIndex(s, "/"); i > 0; i = strings.LastIndex(s[:i], "/") {
		if n, ok := f.nodes[domain.Locator(s[:i])]; ok {
			if n.target == "" {
				return "", false
			}
			return domain.Locator(string(n.target) + s[i:]), true
		}
	}
	return "", false
}

func (f *FileSystem) mkdirs(loc domain.Locator) {
	loc = clean(loc)
	for loc != "" {
		if _, ok := f.nodes[loc]; ok {
			return
		}
		f.nodes[loc] = &node{dir: true}
		loc = parent(loc)
	}
}

func toEntry(loc domain.Locator, name string, n *node) domain.Entry {
	if n.dir {
		return domain.Entry{Kind: domain.EntryDirectory, Locator: loc, Name: name}
	}
	return domain.Entry{
		Kind:    domain.EntryFile,
		Locator: loc,
		Name:    name,
		Size:    int64(len(n.data)),
		ModTime: n.modTime,
	}
}

func clean(loc domain.Locator) domain.Locator {
	return domain.Locator(strings.TrimRight(string(loc), "/"))
}

func parent(loc domain.Locator) domain.Locator {
	s := string(clean(loc))
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return ""
	}
	p := s[:i]
	_, rest, ok := strings.Cut(p, "://")
	if !ok || strings.Trim(rest, "/") == "" {
		return ""
	}
	return domain.Locator(p)
}
