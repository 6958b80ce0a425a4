// Package session holds the client's auth/session view: which modal is open,
// whether a register-or-login chain is in flight, the caller's own profile and
// the list of all profiles.
//
// Every transition is total and does no I/O. The Machine serializes them with
// a mutex so the concurrent priming batch can apply results as they arrive.
package session

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
)

// State is a point-in-time copy of the session.
type State struct {
	SignInModalOpen  bool
	SignUpModalOpen  bool
	ProfileModalOpen bool
	IsAuthPending    bool
	MyProfile        models.Profile
	AllProfiles      []models.Profile
	AuthError        error
}

// Authenticated reports whether an own profile has been loaded.
func (s State) Authenticated() bool {
	return !s.MyProfile.IsZero()
}

func initialState() State {
	return State{
		SignInModalOpen: true,
		AllProfiles:     []models.Profile{},
	}
}

type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a Machine in the initial state: sign-in open, nothing
// pending, no profile.
func NewMachine() *Machine {
	return &Machine{state: initialState()}
}

func (m *Machine) update(fn func(s *State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *Machine) BeginAuthPending() { m.update(func(s *State) { s.IsAuthPending = true }) }
func (m *Machine) EndAuthPending()   { m.update(func(s *State) { s.IsAuthPending = false }) }

// TryBeginAuthPending sets the pending flag unless it is already set and
// reports whether this call set it.
func (m *Machine) TryBeginAuthPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsAuthPending {
		return false
	}
	m.state.IsAuthPending = true
	return true
}

func (m *Machine) OpenSignIn()   { m.update(func(s *State) { s.SignInModalOpen = true }) }
func (m *Machine) CloseSignIn()  { m.update(func(s *State) { s.SignInModalOpen = false }) }
func (m *Machine) OpenSignUp()   { m.update(func(s *State) { s.SignUpModalOpen = true }) }
func (m *Machine) CloseSignUp()  { m.update(func(s *State) { s.SignUpModalOpen = false }) }
func (m *Machine) OpenProfile()  { m.update(func(s *State) { s.ProfileModalOpen = true }) }
func (m *Machine) CloseProfile() { m.update(func(s *State) { s.ProfileModalOpen = false }) }

func (m *Machine) SetMyProfile(p models.Profile) {
	m.update(func(s *State) { s.MyProfile = p })
}

// SetAllProfiles replaces the profile list with a copy of list.
func (m *Machine) SetAllProfiles(list []models.Profile) {
	cp := slices.Clone(list)
	if cp == nil {
		cp = []models.Profile{}
	}
	m.update(func(s *State) { s.AllProfiles = cp })
}

// UpdateMyProfileInPlace swaps the element of AllProfiles whose id matches
// p.ID, keeping order. MyProfile follows when its id matches too. Unknown ids
// leave the list untouched.
func (m *Machine) UpdateMyProfileInPlace(p models.Profile) {
	m.update(func(s *State) {
		if i := slices.IndexFunc(s.AllProfiles, func(x models.Profile) bool { return x.ID == p.ID }); i >= 0 {
			list := slices.Clone(s.AllProfiles)
			list[i] = p
			s.AllProfiles = list
		}
		if s.MyProfile.ID == p.ID {
			s.MyProfile = p
		}
	})
}

// RenameMyProfileLocally edits MyProfile.NickName without talking to the
// server.
func (m *Machine) RenameMyProfileLocally(nickName string) {
	m.update(func(s *State) { s.MyProfile.NickName = nickName })
}

func (m *Machine) SetAuthError(err error) { m.update(func(s *State) { s.AuthError = err }) }
func (m *Machine) ClearAuthError()        { m.update(func(s *State) { s.AuthError = nil }) }

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.update(func(s *State) { *s = initialState() })
}

// Snapshot returns a copy that later transitions will not modify.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.AllProfiles = slices.Clone(m.state.AllProfiles)
	return s
}
