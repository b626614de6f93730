package auth

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	Name string
	Role string
}

// Directory is a fixed, in-memory user list for demo deployments.
// A user's password is the name of their role.
type Directory struct {
	users map[string]User
}

func (d *Directory) Authenticate(name, password string) (User, bool) {
	u, ok := d.users[name]
	if !ok || u.Role != password {
		return User{}, false
	}
	return u, true
}

func NewDirectory(users ...User) *Directory {
	if len(users) == 0 {
		users = []User{{Name: "admin", Role: RoleAdmin}, {Name: "user", Role: RoleUser}}
	}
	m := make(map[string]User, len(users))
	for _, u := range users {
		m[u.Name] = u
	}
	return &Directory{users: m}
}
