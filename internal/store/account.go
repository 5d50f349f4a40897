package store

import (
	"sync"
	"time"
)

// Account is a registered user's credential record.
//
// Passwords are stored in clear text. This preserves the on-disk format the
// board has always used and is a documented known weakness; do not expose
// the data directory.
type Account struct {
	Password string    `json:"password"`
	Created  time.Time `json:"created"`
}

// Accounts persists user accounts as a username-keyed JSON snapshot.
// Usernames are case-sensitive.
type Accounts struct {
	mu   sync.Mutex
	path string
}

// NewAccounts opens the account store, creating an empty one if the backing
// file does not exist.
func NewAccounts(path string) (*Accounts, error) {
	if err := ensureSnapshot(path, map[string]Account{}); err != nil {
		return nil, err
	}
	return &Accounts{path: path}, nil
}

func (s *Accounts) load() (map[string]Account, error) {
	accounts := make(map[string]Account)
	if err := readSnapshot(s.path, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Exists reports whether a username is already taken.
func (s *Accounts) Exists(username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := accounts[username]
	return ok, nil
}

// CreateIfAbsent registers a new account, or fails with ErrUsernameTaken if
// the username is already in use.
func (s *Accounts) CreateIfAbsent(username, password string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return Account{}, err
	}
	if _, ok := accounts[username]; ok {
		return Account{}, ErrUsernameTaken
	}

	a := Account{Password: password, Created: time.Now().UTC()}
	accounts[username] = a
	if err := writeSnapshot(s.path, accounts); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Verify checks a username/password pair by exact match of both fields.
// Returns ErrInvalidCredentials on any mismatch.
func (s *Accounts) Verify(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return err
	}
	a, ok := accounts[username]
	if !ok || a.Password != password {
		return ErrInvalidCredentials
	}
	return nil
}
