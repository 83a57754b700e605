// Package tui provides a Bubble Tea terminal UI for chatting with a pet.
package tui

// History is a fixed-size ring of submitted lines browsed with Up/Down.
// Browsing keeps whatever was half-typed and hands it back on the way out.
type History struct {
	ring  []string
	start int // oldest slot
	n     int
	back  int // steps behind the newest line; 0 while not browsing
	draft string
}

// NewHistory creates a history holding at most size lines.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{ring: make([]string, size)}
}

// Len reports how many lines are stored.
func (h *History) Len() int { return h.n }

// at returns the i-th stored line, oldest first.
func (h *History) at(i int) string {
	return h.ring[(h.start+i)%len(h.ring)]
}

// Record stores a submitted line and stops browsing. Blank lines and
// repeats of the newest line are not stored.
func (h *History) Record(line string) {
	defer h.Leave()
	if line == "" || (h.n > 0 && h.at(h.n-1) == line) {
		return
	}
	if h.n < len(h.ring) {
		h.ring[(h.start+h.n)%len(h.ring)] = line
		h.n++
		return
	}
	h.ring[h.start] = line
	h.start = (h.start + 1) % len(h.ring)
}

// Older steps one line back, stopping at the oldest. draft is the input box
// content, kept when browsing begins.
func (h *History) Older(draft string) (string, bool) {
	if h.n == 0 {
		return "", false
	}
	if h.back == 0 {
		h.draft = draft
	}
	if h.back < h.n {
		h.back++
	}
	return h.at(h.n - h.back), true
}

// Newer steps one line forward. Stepping past the newest line returns the
// saved draft and stops browsing.
func (h *History) Newer() (string, bool) {
	if h.back == 0 {
		return "", false
	}
	h.back--
	if h.back == 0 {
		d := h.draft
		h.draft = ""
		return d, true
	}
	return h.at(h.n - h.back), true
}

// Leave stops browsing and drops the draft.
func (h *History) Leave() {
	h.back = 0
	h.draft = ""
}
