// Package docstore adapts the account repository onto the generic document
// store, so users live in the same backend ("users" collection) as the
// dashboard entities regardless of which store implementation is wired in.
package docstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/user"
)

const usersCollection = "users"

// userDoc is the stored shape of a User. The password hash is only
// serialized here; the core model hides it from API output.
type userDoc struct {
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"isActive"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin"`
}

type UserRepository struct {
	store core.DocumentStore
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(store core.DocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

func (repo *UserRepository) CheckUsernameUniqueness(ctx context.Context, username, email string) error {
	docs, err := repo.query(ctx, core.Filter{Field: "username", Op: core.FilterEq, Value: username})
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return user.ErrUsernameExists
	}

	docs, err = repo.query(ctx, core.Filter{Field: "email", Op: core.FilterEq, Value: email})
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	fields, err := fields(usr)
	if err != nil {
		return user.User{}, err
	}
	id, err := repo.store.Insert(ctx, usersCollection, fields)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	usr.ID = id
	return usr, nil
}

func (repo *UserRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	docs, err := repo.query(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			return record(doc)
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	docs, err := repo.query(ctx, core.Filter{Field: "username", Op: core.FilterEq, Value: username})
	if err != nil {
		return user.User{}, err
	}
	if len(docs) == 0 {
		docs, err = repo.query(ctx, core.Filter{Field: "email", Op: core.FilterEq, Value: username})
		if err != nil {
			return user.User{}, err
		}
	}
	if len(docs) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return record(docs[0])
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	fields, err := fields(usr)
	if err != nil {
		return user.User{}, err
	}
	if err = repo.store.UpdatePartial(ctx, usersCollection, usr.ID, fields); err != nil {
		if errors.Is(err, core.ErrDocumentNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}

func (repo *UserRepository) query(ctx context.Context, filters ...core.Filter) ([]core.Document, error) {
	docs, err := repo.store.Query(ctx, usersCollection, core.Query{Filters: filters})
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return docs, nil
}

func fields(usr user.User) (map[string]interface{}, error) {
	raw, err := json.Marshal(userDoc{
		Name:         usr.Name,
		Username:     usr.Username,
		Email:        usr.Email,
		IsActive:     usr.IsActive,
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		LastLogin:    usr.LastLogin,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding user")
	}
	fields := make(map[string]interface{})
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(err, "encoding user")
	}
	return fields, nil
}

func record(doc core.Document) (user.User, error) {
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return user.User{}, errors.Wrap(err, "decoding user")
	}
	var ud userDoc
	if err = json.Unmarshal(raw, &ud); err != nil {
		return user.User{}, errors.Wrap(err, "decoding user")
	}
	return user.User{
		ID:           doc.ID,
		Name:         ud.Name,
		Username:     ud.Username,
		Email:        ud.Email,
		IsActive:     ud.IsActive,
		PasswordHash: ud.PasswordHash,
		CreatedAt:    ud.CreatedAt,
		LastLogin:    ud.LastLogin,
	}, nil
}
