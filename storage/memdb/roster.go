package memdb

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is a seeded login on the stand-in server. The real auth service
// owns accounts in production; the engine only ever sees the token.
type Account struct {
	Username     string
	Name         string
	PasswordHash []byte
	IsTeacher    bool
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (repo *AccountRepository) CreateAccount(acct Account) (Account, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.accounts[acct.Username] = &acct
	return acct, nil
}

func (repo *AccountRepository) GetAccountByUsername(username string) (Account, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if acct, ok := repo.db.accounts[username]; ok {
		return *acct, nil
	}
	return Account{}, ErrAccountNotFound
}
