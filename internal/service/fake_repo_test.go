package service_test

import (
	"context"
	"sync"

	"user-service/internal/entities"
	"user-service/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the Postgres repository
// with the same sentinel-error semantics.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*entities.User
	err    error // when set, every call fails with it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*entities.User{}}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) List(ctx context.Context) ([]*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	users := []*entities.User{}
	for id := 1; id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			copied := *u
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, name, email, role string) (*entities.User, error) {
	return f.insert(name, email, "", role)
}

func (f *fakeUserRepo) CreateWithCredential(ctx context.Context, name, email, passwordHash, role string) (*entities.User, error) {
	return f.insert(name, email, passwordHash, role)
}

func (f *fakeUserRepo) insert(name, email, passwordHash, role string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	f.nextID++
	u := &entities.User{
		ID:           f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	f.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id int, name, email, role string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}
	u.Name, u.Email, u.Role = name, email, role
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepo) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}
