package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	chaterrors "chat-room/errors"
)

type IUserRepository interface {
	CreateUser(username, passwordHash string) error
	GetUser(username string) (User, error)
}

// User is the stored account record. Only the hash ever touches disk.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepository keeps credentials in BadgerDB under "user:{username}".
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

func userKey(username string) []byte {
	return []byte("user:" + username)
}

// CreateUser persists a new account. A taken username fails with
// ErrUserAlreadyExists; the existence check and the write share one
// transaction.
func (u *UserRepository) CreateUser(username, passwordHash string) error {
	record := User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(username)); err == nil {
			return chaterrors.ErrUserAlreadyExists
		}
		return txn.Set(userKey(username), data)
	})
}

// GetUser retrieves an account record by username.
func (u *UserRepository) GetUser(username string) (User, error) {
	var record User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return User{}, err
	}
	return record, nil
}
