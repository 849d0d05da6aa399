package basic

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"slices"
	"strings"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const Provider = "basic"

type User struct {
	name     string
	password string
	roles    []string
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.name
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return Provider
}

// UserRoles implements authn.User.
func (u *User) UserRoles() []string {
	return slices.Clone(u.roles)
}

// VerifyPassword accepts bcrypt hashes and plain text passwords.
func (u *User) VerifyPassword(password string) bool {
	if isHash(u.password) {
		return bcrypt.CompareHashAndPassword([]byte(u.password), []byte(password)) == nil
	}

	expected := sha256.Sum256([]byte(u.password))
	given := sha256.Sum256([]byte(password))

	return subtle.ConstantTimeCompare(expected[:], given[:]) == 1
}

var _ authn.User = &User{}

func NewUser(name, password string, roles ...string) *User {
	return &User{
		name:     name,
		password: password,
		roles:    roles,
	}
}

// Users is a UserProvider backed by a fixed list of users.
type Users struct {
	users map[string]*User
}

// Authenticate implements UserProvider.
func (u *Users) Authenticate(ctx context.Context, username string, password string) (authn.User, error) {
	user, exists := u.users[username]
	if !exists || !user.VerifyPassword(password) {
		return nil, errors.WithStack(authn.ErrUnauthenticated)
	}

	return user, nil
}

func (u *Users) User(name string) (*User, bool) {
	user, exists := u.users[name]
	return user, exists
}

func (u *Users) Len() int {
	return len(u.users)
}

func NewUsers(users ...*User) *Users {
	byName := make(map[string]*User, len(users))
	for _, user := range users {
		byName[user.name] = user
	}

	return &Users{
		users: byName,
	}
}

var _ UserProvider = &Users{}

func isHash(password string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(password, prefix) {
			return true
		}
	}

	return false
}
