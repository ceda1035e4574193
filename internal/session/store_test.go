package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DBPath: filepath.Join(t.TempDir(), "sessions.db")})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// --- Create / Get ---

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Create("sess-1", "TaskFlow PRD"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	r, err := s.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Name != "TaskFlow PRD" {
		t.Errorf("Name = %q, want %q", r.Name, "TaskFlow PRD")
	}
	if r.ArchivedAt != nil {
		t.Error("fresh session should not be archived")
	}
}

func TestCreate_ExistingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)

	if err := s.Create("sess-1", "first"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create("sess-1", "second"); err != nil {
		t.Fatalf("repeat Create failed: %v", err)
	}

	r, err := s.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Name != "first" {
		t.Errorf("Name = %q, want the original %q", r.Name, "first")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.Exists("sess-1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Exists = true before Create")
	}

	s.Create("sess-1", "")
	ok, err = s.Exists("sess-1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Exists = false after Create")
	}
}

// --- State round-trip ---

func TestSaveAndLoadState(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	state := conversation.NewState("sess-1")
	state.CurrentSection = questions.SectionGoals
	state.Responses = map[questions.SectionID]map[string]string{
		questions.SectionIntroduction: {
			"productDescription": "A task tracker.",
			"problemStatement":   "Work scatters across tools.",
		},
		questions.SectionGoals: {
			"businessObjectives": "Grow weekly active teams.",
		},
	}
	state.AttemptCounts = map[questions.SectionID]map[string]int{
		questions.SectionIntroduction: {"productDescription": 2, "problemStatement": 1},
	}
	state.CompletedSections = []questions.SectionID{questions.SectionIntroduction}
	state.Metadata.AnswerCount = 3

	if err := s.SaveState("sess-1", state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	loaded, err := s.LoadState("sess-1")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if loaded.CurrentSection != questions.SectionGoals {
		t.Errorf("CurrentSection = %s, want goals", loaded.CurrentSection)
	}
	if got := loaded.Responses[questions.SectionIntroduction]["productDescription"]; got != "A task tracker." {
		t.Errorf("response = %q, want %q", got, "A task tracker.")
	}
	if got := loaded.AttemptCounts[questions.SectionIntroduction]["productDescription"]; got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
	if len(loaded.CompletedSections) != 1 || loaded.CompletedSections[0] != questions.SectionIntroduction {
		t.Errorf("CompletedSections = %v, want [introduction]", loaded.CompletedSections)
	}
	if loaded.Metadata.AnswerCount != 3 {
		t.Errorf("AnswerCount = %d, want 3", loaded.Metadata.AnswerCount)
	}
	if loaded.Metadata.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", loaded.Metadata.SessionID)
	}
}

func TestSaveState_OverwritesSectionRows(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	state := conversation.NewState("sess-1")
	state.Responses = map[questions.SectionID]map[string]string{
		questions.SectionIntroduction: {"productDescription": "v1"},
	}
	if err := s.SaveState("sess-1", state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	state.Responses[questions.SectionIntroduction]["productDescription"] = "v2"
	if err := s.SaveState("sess-1", state); err != nil {
		t.Fatalf("second SaveState failed: %v", err)
	}

	loaded, err := s.LoadState("sess-1")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got := loaded.Responses[questions.SectionIntroduction]["productDescription"]; got != "v2" {
		t.Errorf("response = %q, want v2", got)
	}
}

func TestLoadState_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LoadState("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadState(nope) error = %v, want ErrNotFound", err)
	}
}

// --- List / Archive ---

func TestList_ExcludesArchived(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "active")
	s.Create("sess-2", "archived")

	if err := s.Archive("sess-2"); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	active, err := s.List(false, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "sess-1" {
		t.Errorf("List(false) = %v, want only sess-1", active)
	}

	all, err := s.List(true, 0)
	if err != nil {
		t.Fatalf("List(true) failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(true) returned %d sessions, want 2", len(all))
	}
}

func TestArchive_NotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.Archive("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Archive(nope) error = %v, want ErrNotFound", err)
	}
}

func TestArchive_TwiceFails(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	if err := s.Archive("sess-1"); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if err := s.Archive("sess-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Archive error = %v, want ErrNotFound", err)
	}
}

// --- Messages ---

func TestAppendAndListMessages(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	msgs := []conversation.Message{
		{Role: conversation.RoleAssistant, Content: "welcome"},
		{Role: conversation.RoleUser, Content: "an answer", Section: questions.SectionIntroduction},
		{Role: conversation.RoleAssistant, Content: "recap", Section: questions.SectionIntroduction, Summary: true},
	}
	for _, m := range msgs {
		if err := s.AppendMessage("sess-1", m); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	got, err := s.Messages("sess-1")
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Messages returned %d entries, want 3", len(got))
	}
	if got[0].Content != "welcome" || got[2].Content != "recap" {
		t.Error("messages should come back in insertion order")
	}
	if got[1].Section != questions.SectionIntroduction {
		t.Errorf("Section = %s, want introduction", got[1].Section)
	}
	if !got[2].Summary {
		t.Error("summary flag should round-trip")
	}
	if got[0].CreatedAt == "" {
		t.Error("messages should carry a created_at timestamp")
	}
}

func TestReplaceMessages(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	for i := 0; i < 5; i++ {
		s.AppendMessage("sess-1", conversation.Message{Role: conversation.RoleUser, Content: "m"})
	}

	compacted := []conversation.Message{
		{Role: conversation.RoleAssistant, Content: "recap", Summary: true, CreatedAt: "2026-03-14 12:00:00"},
	}
	if err := s.ReplaceMessages("sess-1", compacted); err != nil {
		t.Fatalf("ReplaceMessages failed: %v", err)
	}

	got, err := s.Messages("sess-1")
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("after replace: %d messages, want 1", len(got))
	}
	if got[0].CreatedAt != "2026-03-14 12:00:00" {
		t.Errorf("CreatedAt = %q, want the preserved timestamp", got[0].CreatedAt)
	}
}

// --- CachedStore ---

func TestCachedStore_ReadThrough(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	cached, err := NewCached(s, 8)
	if err != nil {
		t.Fatalf("NewCached failed: %v", err)
	}

	state := conversation.NewState("sess-1")
	state.Responses = map[questions.SectionID]map[string]string{
		questions.SectionIntroduction: {"productDescription": "cached"},
	}
	if err := cached.SaveState("sess-1", state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	first, err := cached.LoadState("sess-1")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	second, err := cached.LoadState("sess-1")
	if err != nil {
		t.Fatalf("second LoadState failed: %v", err)
	}
	if first != second {
		t.Error("repeated loads should return the cached state")
	}
}

func TestCachedStore_ArchiveEvicts(t *testing.T) {
	s := newTestStore(t)
	s.Create("sess-1", "")

	cached, err := NewCached(s, 8)
	if err != nil {
		t.Fatalf("NewCached failed: %v", err)
	}

	if err := cached.SaveState("sess-1", conversation.NewState("sess-1")); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if err := cached.Archive("sess-1"); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if _, ok := cached.states.Get("sess-1"); ok {
		t.Error("archiving should evict the cached state")
	}
}

func TestNewCached_DefaultSize(t *testing.T) {
	s := newTestStore(t)
	if _, err := NewCached(s, 0); err != nil {
		t.Fatalf("NewCached(0) failed: %v", err)
	}
}
