package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// UserRepository adaptador en memoria de repository.UserRepository.
// El email es único sin distinguir mayúsculas.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

// NewUserRepository construye el repositorio.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.byEmail[emailKey(user.Email)]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byID[user.ID] = cloneUser(user)
	r.byEmail[emailKey(user.Email)] = user.ID
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if emailKey(prev.Email) != emailKey(user.Email) {
		if _, taken := r.byEmail[emailKey(user.Email)]; taken {
			return domain.ErrEmailAlreadyExists
		}
		delete(r.byEmail, emailKey(prev.Email))
		r.byEmail[emailKey(user.Email)] = user.ID
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byEmail, emailKey(user.Email))
	delete(r.byID, id)
	return nil
}

// List devuelve usuarios ordenados por nombre.
func (r *UserRepository) List() ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.User, 0, len(r.byID))
	for _, user := range r.byID {
		all = append(all, cloneUser(user))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}
