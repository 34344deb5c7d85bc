package session

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"garim-lab/internal/board"
	"garim-lab/internal/model"
)

// ErrValidation is returned when a post misses its author or body.
var ErrValidation = errors.New("session: author and body are required")

const (
	// PointsPerPost is added to the author's score on every accepted post.
	PointsPerPost = 10
	// MaxListedPosts caps ListPosts.
	MaxListedPosts = 5
)

// CurrentAnalysis is the analysis slot shown in the report pane.
type CurrentAnalysis struct {
	Title    string
	Analysis model.Analysis
	At       time.Time
}

// Options configures new stores.
type Options struct {
	Seed       []model.RankEntry
	Classifier *board.Classifier
	Now        func() time.Time
}

// Store is the mutable state of one visitor session.
type Store struct {
	mu         sync.Mutex
	id         string
	classifier *board.Classifier
	now        func() time.Time

	posts      map[model.Category][]model.BoardPost
	scores     map[string]int
	order      []string // authors in order of first appearance
	saved      []model.SavedArticle
	current    *CurrentAnalysis
	credential string
	flash      string
	lastSeen   time.Time
}

// NewStore creates a session store with its own copy of the seed ranking.
func NewStore(id string, opts Options) *Store {
	if opts.Classifier == nil {
		opts.Classifier = board.NewClassifier(board.DefaultRules)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		id:         id,
		classifier: opts.Classifier,
		now:        opts.Now,
		posts:      map[model.Category][]model.BoardPost{},
		scores:     map[string]int{},
	}
	for _, c := range model.Categories() {
		s.posts[c] = nil
	}
	for _, e := range opts.Seed {
		if _, seen := s.scores[e.Author]; !seen {
			s.order = append(s.order, e.Author)
		}
		s.scores[e.Author] = e.Score
	}
	s.lastSeen = s.now()
	return s
}

// ID returns the session id.
func (s *Store) ID() string { return s.id }

// Touch marks the session as active.
func (s *Store) Touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

// LastSeen returns the last activity time.
func (s *Store) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SetCredential stores the visitor's analysis credential for this session only.
func (s *Store) SetCredential(key string) {
	s.mu.Lock()
	s.credential = strings.TrimSpace(key)
	s.mu.Unlock()
}

// Credential returns the session credential, empty if none was entered.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// SetFlash stores a one-shot message for the next page render.
func (s *Store) SetFlash(msg string) {
	s.mu.Lock()
	s.flash = msg
	s.mu.Unlock()
}

// TakeFlash returns and clears the pending message.
func (s *Store) TakeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// RecordAnalysis overwrites the current analysis slot.
func (s *Store) RecordAnalysis(title string, a model.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &CurrentAnalysis{Title: title, Analysis: a, At: s.now()}
}

// CurrentAnalysis returns the current slot, ok=false when nothing was analysed yet.
func (s *Store) CurrentAnalysis() (CurrentAnalysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return CurrentAnalysis{}, false
	}
	return *s.current, true
}

// SaveArticle appends a scrapped headline. Duplicates are kept.
func (s *Store) SaveArticle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, model.SavedArticle{Title: title, SavedAt: s.now()})
}

// SavedArticles returns scrapped headlines in save order.
func (s *Store) SavedArticles() []model.SavedArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SavedArticle, len(s.saved))
	copy(out, s.saved)
	return out
}

// SubmitPost appends a post to the bucket derived from its board and credits the author.
func (s *Store) SubmitPost(author, body, boardName string) error {
	author = strings.TrimSpace(author)
	body = strings.TrimSpace(body)
	if author == "" || body == "" {
		return ErrValidation
	}
	cat := s.classifier.Category(boardName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[cat] = append(s.posts[cat], model.BoardPost{
		Author:    author,
		Body:      body,
		Board:     boardName,
		Category:  cat,
		CreatedAt: s.now(),
	})
	if _, seen := s.scores[author]; !seen {
		s.scores[author] = 0
		s.order = append(s.order, author)
	}
	s.scores[author] += PointsPerPost
	return nil
}

// ListPosts returns up to MaxListedPosts posts of a board, most recent first.
func (s *Store) ListPosts(boardName string) []model.BoardPost {
	cat := s.classifier.Category(boardName)

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.posts[cat]
	out := make([]model.BoardPost, 0, MaxListedPosts)
	for i := len(bucket) - 1; i >= 0 && len(out) < MaxListedPosts; i-- {
		if bucket[i].Board == boardName {
			out = append(out, bucket[i])
		}
	}
	return out
}

// Score returns an author's points and whether the author is ranked.
func (s *Store) Score(author string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.scores[author]
	return v, ok
}

// TopRanking returns the n best authors by score. Ties keep the order in which
// authors entered the ranking: seeds first, then first-time posters.
func (s *Store) TopRanking(n int) []model.RankEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.RankEntry, 0, len(s.order))
	for _, a := range s.order {
		out = append(out, model.RankEntry{Author: a, Score: s.scores[a]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
