package authn

// User is an authenticated actor of the admin surface.
type User interface {
	UserSubject() string
	UserProvider() string
	UserRoles() []string
}

// Anonymous is used when the admin surface is served without authentication.
var Anonymous User = anonymousUser{}

type anonymousUser struct{}

func (anonymousUser) UserSubject() string  { return "anonymous" }
func (anonymousUser) UserProvider() string { return "none" }
func (anonymousUser) UserRoles() []string  { return []string{} }
