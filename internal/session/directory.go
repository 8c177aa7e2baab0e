package session

import (
	"sync"

	"github.com/dmitrijs2005/deployhq/internal/common"
	"github.com/dmitrijs2005/deployhq/internal/models"
)

// Directory is the list of known accounts. Lookups are linear scans with
// case-sensitive comparison of both email and secret.
type Directory struct {
	mu       sync.RWMutex
	accounts []models.Account
}

func NewDirectory(seed ...models.Account) *Directory {
	return &Directory{accounts: append([]models.Account(nil), seed...)}
}

// SeedAccounts returns the built-in demo accounts.
func SeedAccounts() []models.Account {
	return []models.Account{
		{
			User: models.User{
				ID:        "1",
				Email:     "john@example.com",
				Name:      "John Doe",
				Role:      models.RoleUser,
				Avatar:    models.AvatarFor("John Doe"),
				CreatedAt: "2024-01-01",
			},
			Secret: "password123",
		},
		{
			User: models.User{
				ID:        "2",
				Email:     "builder@example.com",
				Name:      "Jane Builder",
				Role:      models.RoleBuilder,
				Avatar:    models.AvatarFor("Jane Builder"),
				Company:   "AI Solutions Inc.",
				CreatedAt: "2024-01-01",
			},
			Secret: "password123",
		},
		{
			User: models.User{
				ID:        "3",
				Email:     "admin@deployhq.com",
				Name:      "Admin User",
				Role:      models.RoleBuilder,
				Avatar:    "/placeholder.svg?height=40&width=40&text=AD",
				CreatedAt: "2024-01-01",
			},
			Secret: "admin123",
		},
	}
}

// Match finds the account with exactly this email and secret.
func (d *Directory) Match(email, secret string) (models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.Email == email && a.Secret == secret {
			return a, true
		}
	}
	return models.Account{}, false
}

func (d *Directory) Exists(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexOf(email) >= 0
}

// Add appends a unless its email is taken.
func (d *Directory) Add(a models.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexOf(a.Email) >= 0 {
		return common.ErrDuplicateAccount
	}
	d.accounts = append(d.accounts, a)
	return nil
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

func (d *Directory) indexOf(email string) int {
	for i, a := range d.accounts {
		if a.Email == email {
			return i
		}
	}
	return -1
}
