package app

import (
	"sync"

	"blogwizard/internal/article"
)

// Workspace holds the in-memory result of the current generation run. Every
// run gets a token from Begin; commits carry the token back so results from
// a superseded run are dropped instead of overwriting newer state.
type Workspace struct {
	mu       sync.Mutex
	gen      uint64
	article  *article.Article
	featured *article.Image
	inline   *article.Image
}

// Snapshot is a read-only view of the workspace at one point in time.
type Snapshot struct {
	Article  *article.Article
	Featured *article.Image
	Inline   *article.Image
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Begin clears the workspace for a new run and returns its token.
func (w *Workspace) Begin() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.article = nil
	w.featured = nil
	w.inline = nil
	return w.gen
}

// Token returns the token of the run that currently owns the workspace.
func (w *Workspace) Token() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen
}

func (w *Workspace) CommitArticle(token uint64, art *article.Article) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.gen {
		return false
	}
	w.article = art
	return true
}

func (w *Workspace) SetFeatured(token uint64, img *article.Image) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.gen {
		return false
	}
	w.featured = img
	return true
}

func (w *Workspace) SetInline(token uint64, img *article.Image) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.gen {
		return false
	}
	w.inline = img
	return true
}

func (w *Workspace) UpdateContent(token uint64, content string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.gen || w.article == nil {
		return false
	}
	w.article.Content = content
	return true
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Article:  w.article,
		Featured: w.featured,
		Inline:   w.inline,
	}
}
