package store

import "sync"

// Bulletin is a server-authored announcement. Bulletins are read-only
// through the client protocol; only the seed at first startup writes them.
type Bulletin struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// defaultBulletins seeds a brand-new board.
var defaultBulletins = []Bulletin{
	{
		Title: "Welcome to Goose Retro BBS",
		Body:  "This is a tiny local BBS. Have fun!",
	},
	{
		Title: "Tips",
		Body:  "Use netcat: nc localhost 2323",
	},
}

// Bulletins persists announcements as an ordered JSON snapshot.
type Bulletins struct {
	mu   sync.Mutex
	path string
}

// NewBulletins opens the bulletin store. If the backing file does not exist
// it is created with the default entries; an existing file is never reseeded.
func NewBulletins(path string) (*Bulletins, error) {
	if err := ensureSnapshot(path, defaultBulletins); err != nil {
		return nil, err
	}
	return &Bulletins{path: path}, nil
}

// List returns all bulletins in authoring order.
func (s *Bulletins) List() ([]Bulletin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bulls []Bulletin
	if err := readSnapshot(s.path, &bulls); err != nil {
		return nil, err
	}
	return bulls, nil
}

// Read returns the bulletin at the given 1-based position, or ErrOutOfRange.
func (s *Bulletins) Read(pos int) (Bulletin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bulls []Bulletin
	if err := readSnapshot(s.path, &bulls); err != nil {
		return Bulletin{}, err
	}
	if pos < 1 || pos > len(bulls) {
		return Bulletin{}, ErrOutOfRange
	}
	return bulls[pos-1], nil
}
