package app

import (
	"testing"

	"blogwizard/internal/article"
)

func TestWorkspaceStaleTokenIsRejected(t *testing.T) {
	ws := NewWorkspace()
	old := ws.Begin()
	ws.Begin()

	if ws.CommitArticle(old, &article.Article{Title: "stale"}) {
		t.Error("CommitArticle accepted a stale token")
	}
	if ws.SetFeatured(old, &article.Image{}) {
		t.Error("SetFeatured accepted a stale token")
	}
	if snap := ws.Snapshot(); snap.Article != nil || snap.Featured != nil {
		t.Errorf("stale writes reached the workspace: %+v", snap)
	}
}

func TestWorkspaceBeginClearsState(t *testing.T) {
	ws := NewWorkspace()
	token := ws.Begin()
	ws.CommitArticle(token, &article.Article{Title: "first"})
	ws.SetFeatured(token, &article.Image{Data: []byte("f")})
	ws.SetInline(token, &article.Image{Data: []byte("i")})

	ws.Begin()
	snap := ws.Snapshot()
	if snap.Article != nil || snap.Featured != nil || snap.Inline != nil {
		t.Errorf("Begin left old state behind: %+v", snap)
	}
}

func TestWorkspaceUpdateContentRequiresArticle(t *testing.T) {
	ws := NewWorkspace()
	token := ws.Begin()
	if ws.UpdateContent(token, "body") {
		t.Error("UpdateContent succeeded with no article committed")
	}

	ws.CommitArticle(token, &article.Article{Content: "old"})
	if !ws.UpdateContent(token, "new") {
		t.Fatal("UpdateContent failed with a committed article")
	}
	if got := ws.Snapshot().Article.Content; got != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}
