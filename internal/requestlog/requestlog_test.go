package requestlog

import (
	"strings"
	"sync"
	"testing"
)

func TestMemoryStore_LogAssignsIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore(10)
	entry := &Entry{Method: "GET", Path: "/api/books"}

	s.Log(entry)

	if entry.ID != "req-1" {
		t.Errorf("ID = %q, want req-1", entry.ID)
	}
	if entry.Timestamp.IsZero() {
		t.Error("Timestamp was not set")
	}
	if got := s.Get("req-1"); got != entry {
		t.Errorf("Get(req-1) = %v, want the logged entry", got)
	}
}

func TestMemoryStore_KeepsGivenID(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(&Entry{ID: "abc"})

	if s.Get("abc") == nil {
		t.Error("entry with explicit ID not found")
	}
	if s.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}

func TestMemoryStore_LogNil(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(nil)
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)
	s.Log(&Entry{ID: "1"})
	s.Log(&Entry{ID: "2"})
	s.Log(&Entry{ID: "3"})

	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if s.Get("1") != nil {
		t.Error("oldest entry should have been evicted")
	}
}

func TestMemoryStore_DefaultCapacity(t *testing.T) {
	s := NewMemoryStore(0)
	if s.maxEntries != DefaultMaxEntries {
		t.Errorf("maxEntries = %d, want %d", s.maxEntries, DefaultMaxEntries)
	}
}

func TestMemoryStore_ListNewestFirstWithFilter(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(&Entry{ID: "1", Method: "GET", Path: "/api/books", ResponseStatus: 200})
	s.Log(&Entry{ID: "2", Method: "POST", Path: "/api/books", ResponseStatus: 201})
	s.Log(&Entry{ID: "3", Method: "GET", Path: "/api/books/7", ResponseStatus: 404})
	s.Log(&Entry{ID: "4", Method: "GET", Path: "/api/bookshelves", ResponseStatus: 200})

	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{"all", nil, []string{"4", "3", "2", "1"}},
		{"method", &Filter{Method: "GET"}, []string{"4", "3", "1"}},
		{"path prefix", &Filter{Path: "/api/books/"}, []string{"3", "2", "1"}},
		{"status", &Filter{StatusCode: 404}, []string{"3"}},
		{"limit", &Filter{Limit: 2}, []string{"4", "3"}},
		{"offset", &Filter{Offset: 3}, []string{"1"}},
		{"offset past end", &Filter{Offset: 9}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.List(tt.filter)
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ID
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("List() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(&Entry{})
	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", s.Count())
	}
}

func TestMemoryStore_ConcurrentLog(t *testing.T) {
	s := NewMemoryStore(1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Log(&Entry{Method: "GET"})
		}()
	}
	wg.Wait()
	if s.Count() != 50 {
		t.Errorf("Count() = %d, want 50", s.Count())
	}
}

func TestTruncateBody(t *testing.T) {
	if got := TruncateBody("short", 10); got != "short" {
		t.Errorf("TruncateBody(short) = %q", got)
	}
	if got := TruncateBody("abcdef", 3); got != "abc...(truncated)" {
		t.Errorf("TruncateBody(abcdef, 3) = %q", got)
	}
	long := strings.Repeat("x", MaxBodySize+1)
	if got := TruncateBody(long, 0); len(got) != MaxBodySize+len("...(truncated)") {
		t.Errorf("default truncation length = %d", len(got))
	}
}
