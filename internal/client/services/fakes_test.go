package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/photoshare/internal/client/credstore"
	"github.com/dmitrijs2005/photoshare/internal/client/models"
)

// recorder collects call names from every fake in the order they happen.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// fakeClient implements client.Client.
type fakeClient struct {
	rec *recorder

	RegisterErr error
	LoginRet    string
	LoginErr    error

	CreateProfileRet models.Profile
	CreateProfileErr error

	UpdateProfileRet models.Profile
	UpdateProfileErr error

	MyProfileRet models.Profile
	MyProfileErr error

	AllProfilesRet []models.Profile
	AllProfilesErr error

	// onLogin and onMyProfile run inside the matching call, before it returns.
	onLogin     func()
	onMyProfile func()

	mu            sync.Mutex
	LastRegister  models.Credentials
	LastLogin     models.Credentials
	LastNickName  string
	LastUpdate    models.Profile
	LastUpdateImg *models.ProfileImage
}

func (f *fakeClient) Register(_ context.Context, c models.Credentials) (models.Account, error) {
	f.rec.add("register")
	f.mu.Lock()
	f.LastRegister = c
	f.mu.Unlock()
	return models.Account{ID: 1, Email: c.Email}, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, c models.Credentials) (string, error) {
	f.rec.add("login")
	f.mu.Lock()
	f.LastLogin = c
	f.mu.Unlock()
	if f.onLogin != nil {
		f.onLogin()
	}
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) CreateProfile(_ context.Context, nickName string) (models.Profile, error) {
	f.rec.add("createProfile(" + nickName + ")")
	f.mu.Lock()
	f.LastNickName = nickName
	f.mu.Unlock()
	return f.CreateProfileRet, f.CreateProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, p models.Profile, img *models.ProfileImage) (models.Profile, error) {
	f.rec.add("updateProfile")
	f.mu.Lock()
	f.LastUpdate = p
	f.LastUpdateImg = img
	f.mu.Unlock()
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) FetchMyProfile(context.Context) (models.Profile, error) {
	f.rec.add("myprofile")
	if f.onMyProfile != nil {
		f.onMyProfile()
	}
	return f.MyProfileRet, f.MyProfileErr
}

func (f *fakeClient) FetchAllProfiles(context.Context) ([]models.Profile, error) {
	f.rec.add("profiles")
	return f.AllProfilesRet, f.AllProfilesErr
}

// fakeTokens implements credstore.Store in memory.
type fakeTokens struct {
	mu       sync.Mutex
	token    string
	SaveErr  error
	ClearErr error
	Saves    int

	// onClear runs inside Clear, before it returns.
	onClear func()
}

func (f *fakeTokens) Save(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) Load(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" {
		return "", credstore.ErrTokenNotFound
	}
	return f.token, nil
}

func (f *fakeTokens) Clear(context.Context) error {
	if f.onClear != nil {
		f.onClear()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token = ""
	return nil
}

func (f *fakeTokens) stored() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// fakeFeed implements FeedReader.
type fakeFeed struct {
	rec         *recorder
	PostsErr    error
	CommentsErr error

	mu     sync.Mutex
	Resets int
}

func (f *fakeFeed) FetchAllPosts(context.Context) error {
	f.rec.add("posts")
	return f.PostsErr
}

func (f *fakeFeed) FetchAllComments(context.Context) error {
	f.rec.add("comments")
	return f.CommentsErr
}

func (f *fakeFeed) Reset() {
	f.mu.Lock()
	f.Resets++
	f.mu.Unlock()
}
