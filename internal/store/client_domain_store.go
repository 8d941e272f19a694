package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// jsonDomainStore is the client's [DomainStore]. Everything lives in memory
// and every write rewrites the JSON file, so a crash loses at most the
// write in flight. A path of ":memory:" disables the file.
type jsonDomainStore struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	state domainPersistedState
}

type domainPersistedState struct {
	Chats        map[string]models.Chat       `json:"chats"`
	Contacts     map[string]models.Contact    `json:"contacts"`
	Newsletters  map[string]models.Newsletter `json:"newsletters"`
	Labels       map[string]models.Label      `json:"labels"`
	QuickReplies map[string]models.QuickReply `json:"quick_replies"`
	Settings     models.AccountSettings       `json:"settings"`
}

func NewDomainStore(path string) (DomainStore, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &jsonDomainStore{
		path:     path,
		inMemory: inMemory,
		state:    newDomainPersistedState(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func newDomainPersistedState() domainPersistedState {
	return domainPersistedState{
		Chats:        make(map[string]models.Chat),
		Contacts:     make(map[string]models.Contact),
		Newsletters:  make(map[string]models.Newsletter),
		Labels:       make(map[string]models.Label),
		QuickReplies: make(map[string]models.QuickReply),
	}
}

func (s *jsonDomainStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read domain store file: %w", err)
	}

	st := newDomainPersistedState()
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode domain store file: %w", ErrCorruptedRecord, err)
	}

	// older files may miss sections
	fresh := newDomainPersistedState()
	if st.Chats == nil {
		st.Chats = fresh.Chats
	}
	if st.Contacts == nil {
		st.Contacts = fresh.Contacts
	}
	if st.Newsletters == nil {
		st.Newsletters = fresh.Newsletters
	}
	if st.Labels == nil {
		st.Labels = fresh.Labels
	}
	if st.QuickReplies == nil {
		st.QuickReplies = fresh.QuickReplies
	}

	s.state = st
	return nil
}

// persist must be called with s.mu held for writing.
func (s *jsonDomainStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create domain store dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode domain store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write domain store file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace domain store file: %w", err)
	}

	return nil
}

func (s *jsonDomainStore) GetChat(_ context.Context, jid string) (models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.state.Chats[jid]
	if !ok {
		return models.Chat{}, ErrNotFound
	}
	return chat, nil
}

func (s *jsonDomainStore) SaveChat(_ context.Context, chat models.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Chats[chat.JID] = chat
	return s.persist()
}

func (s *jsonDomainStore) DeleteChat(_ context.Context, jid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Chats[jid]; !ok {
		return ErrNotFound
	}
	delete(s.state.Chats, jid)
	return s.persist()
}

func (s *jsonDomainStore) GetContact(_ context.Context, jid string) (models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contact, ok := s.state.Contacts[jid]
	if !ok {
		return models.Contact{}, ErrNotFound
	}
	return contact, nil
}

func (s *jsonDomainStore) SaveContact(_ context.Context, contact models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Contacts[contact.JID] = contact
	return s.persist()
}

func (s *jsonDomainStore) GetNewsletter(_ context.Context, jid string) (models.Newsletter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	newsletter, ok := s.state.Newsletters[jid]
	if !ok {
		return models.Newsletter{}, ErrNotFound
	}
	return newsletter, nil
}

func (s *jsonDomainStore) SaveNewsletter(_ context.Context, newsletter models.Newsletter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Newsletters[newsletter.JID] = newsletter
	return s.persist()
}

func (s *jsonDomainStore) SaveLabel(_ context.Context, label models.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Labels[label.ID] = label
	return s.persist()
}

func (s *jsonDomainStore) DeleteLabel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.state.Labels, id)
	for jid, chat := range s.state.Chats {
		chat.Labels = removeString(chat.Labels, id)
		s.state.Chats[jid] = chat
	}
	return s.persist()
}

func (s *jsonDomainStore) SaveQuickReply(_ context.Context, reply models.QuickReply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.QuickReplies[reply.ID] = reply
	return s.persist()
}

func (s *jsonDomainStore) DeleteQuickReply(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.state.QuickReplies, id)
	return s.persist()
}

func (s *jsonDomainStore) Settings(_ context.Context) (models.AccountSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Settings, nil
}

func (s *jsonDomainStore) SaveSettings(_ context.Context, settings models.AccountSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = settings
	return s.persist()
}

func removeString(list []string, v string) []string {
	var out []string
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// Close writes the current state one last time.
func (s *jsonDomainStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist()
}
