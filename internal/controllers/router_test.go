package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"user-service/internal/controllers"
	"user-service/internal/entities"
	"user-service/internal/hasher"
	"user-service/internal/repository"
	"user-service/internal/service"
)

// memRepo backs the controller tests with the repository's sentinel
// semantics in memory.
type memRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*entities.User
	err    error // when set, every call fails with it
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[int]*entities.User{}}
}

var _ repository.UserRepository = (*memRepo)(nil)

func (m *memRepo) List(ctx context.Context) ([]*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	users := []*entities.User{}
	for id := 1; id <= m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (m *memRepo) GetByID(ctx context.Context, id int) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memRepo) Create(ctx context.Context, name, email, role string) (*entities.User, error) {
	return m.insert(name, email, "", role)
}

func (m *memRepo) CreateWithCredential(ctx context.Context, name, email, passwordHash, role string) (*entities.User, error) {
	return m.insert(name, email, passwordHash, role)
}

func (m *memRepo) insert(name, email, passwordHash, role string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	m.nextID++
	u := &entities.User{ID: m.nextID, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *memRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memRepo) Update(ctx context.Context, id int, name, email, role string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for otherID, other := range m.users {
		if otherID != id && other.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	u.Name, u.Email, u.Role = name, email, role
	copied := *u
	return &copied, nil
}

func (m *memRepo) Delete(ctx context.Context, id int) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *memRepo) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// newTestRouter wires real services and controllers over the in-memory
// repository, with the full route table from main.go.
func newTestRouter(t *testing.T) (*gin.Engine, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemRepo()
	log := zerolog.Nop()

	userController := controllers.NewUserController(service.NewUserService(repo, nil, log))
	authController := controllers.NewAuthController(service.NewAuthService(repo, hasher.NewBcryptHasher(bcrypt.MinCost), log))

	r := gin.New()
	r.GET("/users", userController.ListUsers)
	r.GET("/users/:id", userController.GetUser)
	r.POST("/users", userController.CreateUser)
	r.PUT("/users/:id", userController.UpdateUser)
	r.DELETE("/users/:id", userController.DeleteUser)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)

	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
