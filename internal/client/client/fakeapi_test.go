package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

var fakeSigningKey = []byte("fake-api-secret")

// fakeAPI is a tiny in-memory stand-in for the photo-sharing backend.
type fakeAPI struct {
	mu       sync.Mutex
	users    map[string]string // email -> password
	userIDs  map[string]int64
	profiles []models.Profile
	posts    []models.Post
	comments []models.Comment

	// failPaths forces a status code for the matching route template.
	failPaths map[string]int

	lastHeaders   http.Header
	lastMultipart map[string]string
	lastFileName  string
	lastFileData  []byte
	calls         []string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		users:     map[string]string{},
		userIDs:   map[string]int64{},
		failPaths: map[string]int{},
	}

	r := mux.NewRouter()
	r.Use(f.record)
	r.HandleFunc("/api/register/", f.register).Methods(http.MethodPost)
	r.HandleFunc("/authen/jwt/create", f.login).Methods(http.MethodPost)
	r.Handle("/api/profile/", f.auth(f.createProfile)).Methods(http.MethodPost)
	r.Handle("/api/profile/", f.auth(f.listProfiles)).Methods(http.MethodGet)
	r.Handle("/api/profile/{id}/", f.auth(f.updateProfile)).Methods(http.MethodPut)
	r.Handle("/api/myprofile/", f.auth(f.myProfile)).Methods(http.MethodGet)
	r.Handle("/api/post/", f.auth(f.listPosts)).Methods(http.MethodGet)
	r.Handle("/api/comment/", f.auth(f.listComments)).Methods(http.MethodGet)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tpl := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if s, err := route.GetPathTemplate(); err == nil {
				tpl = s
			}
		}

		f.mu.Lock()
		f.lastHeaders = r.Header.Clone()
		f.calls = append(f.calls, r.Method+" "+tpl)
		code, fail := f.failPaths[r.Method+" "+tpl]
		f.mu.Unlock()

		if fail {
			http.Error(w, `{"detail":"forced failure"}`, code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type fakeClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func mintToken(userID int64) string {
	claims := fakeClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fakeSigningKey)
	if err != nil {
		panic(err)
	}
	return s
}

func parseToken(s string) (int64, error) {
	var claims fakeClaims
	_, err := jwt.ParseWithClaims(s, &claims, func(*jwt.Token) (any, error) {
		return fakeSigningKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

type userKey struct{}

func (f *fakeAPI) auth(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "JWT ")
		if !ok {
			http.Error(w, `{"detail":"no credentials"}`, http.StatusUnauthorized)
			return
		}
		uid, err := parseToken(raw)
		if err != nil {
			http.Error(w, `{"detail":"bad token"}`, http.StatusUnauthorized)
			return
		}
		h(w, r.WithContext(context.WithValue(r.Context(), userKey{}, uid)))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.users[c.Email]; dup {
		writeJSON(w, http.StatusBadRequest, map[string]any{"email": []string{"already exists"}})
		return
	}
	id := int64(len(f.users) + 1)
	f.users[c.Email] = c.Password
	f.userIDs[c.Email] = id
	writeJSON(w, http.StatusCreated, models.Account{ID: id, Email: c.Email})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&c)
	f.mu.Lock()
	pw, ok := f.users[c.Email]
	id := f.userIDs[c.Email]
	f.mu.Unlock()
	if !ok || pw != c.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no active account"})
		return
	}
	writeJSON(w, http.StatusOK, models.TokenPair{Access: mintToken(id), Refresh: "r"})
}

func (f *fakeAPI) createProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NickName string `json:"nickName"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	uid := r.Context().Value(userKey{}).(int64)

	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Profile{ID: int64(len(f.profiles) + 1), NickName: body.NickName, OwnerUserID: uid, CreatedAt: "2021-01-01"}
	f.profiles = append(f.profiles, p)
	writeJSON(w, http.StatusCreated, p)
}

func (f *fakeAPI) listProfiles(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.profiles)
}

func (f *fakeAPI) myProfile(w http.ResponseWriter, r *http.Request) {
	uid := r.Context().Value(userKey{}).(int64)
	f.mu.Lock()
	defer f.mu.Unlock()
	mine := []models.Profile{}
	for _, p := range f.profiles {
		if p.OwnerUserID == uid {
			mine = append(mine, p)
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

func (f *fakeAPI) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMultipart = map[string]string{"nickName": r.FormValue("nickName")}
	f.lastFileName, f.lastFileData = "", nil
	if file, hdr, err := r.FormFile("img"); err == nil {
		defer file.Close()
		buf, _ := io.ReadAll(file)
		f.lastFileName = hdr.Filename
		f.lastFileData = buf
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "bad file", http.StatusBadRequest)
		return
	}

	for i, p := range f.profiles {
		if p.ID == id {
			p.NickName = r.FormValue("nickName")
			if f.lastFileName != "" {
				p.AvatarImage = "http://media/" + f.lastFileName
			}
			f.profiles[i] = p
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
}

func (f *fakeAPI) listPosts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.posts)
}

func (f *fakeAPI) listComments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.comments)
}

// staticToken is a TokenLoader over a fixed value or error.
type staticToken struct {
	token string
	err   error
}

func (s *staticToken) Load(context.Context) (string, error) { return s.token, s.err }
