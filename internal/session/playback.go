package session

import "sync"

type playbackKey struct {
	step     int
	question int
}

// PlaybackGuard remembers which question prompts have already been spoken
// aloud during the active session, so the host UI does not re-trigger
// text-to-speech when a question is re-rendered. State is scoped to the
// session rather than shared across screens.
type PlaybackGuard struct {
	mu     sync.Mutex
	played map[playbackKey]bool
}

func NewPlaybackGuard() *PlaybackGuard {
	return &PlaybackGuard{played: make(map[playbackKey]bool)}
}

// FirstPlay reports whether the prompt for (step, question) has not been
// played yet, and marks it as played.
func (g *PlaybackGuard) FirstPlay(step, question int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := playbackKey{step: step, question: question}
	if g.played[key] {
		return false
	}
	g.played[key] = true
	return true
}

// Played reports whether the prompt for (step, question) has been played.
func (g *PlaybackGuard) Played(step, question int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.played[playbackKey{step: step, question: question}]
}

// Reset forgets all playback state. Called when a new session starts.
func (g *PlaybackGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.played = make(map[playbackKey]bool)
}
