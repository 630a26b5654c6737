package auth

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrInvalidLogin covers both unknown emails and wrong passwords.
var ErrInvalidLogin = errors.New("invalid credentials")

// CreateUser registers a local email/password account.
func CreateUser(db *sql.DB, email, name, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{ID: uuid.NewString(), Email: email, Name: name}
	_, err = db.Exec(`INSERT INTO users(id, email, name, password_hash) VALUES(?,?,?,?)`,
		u.ID, u.Email, u.Name, string(hash))
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// VerifyLogin checks a local account's password.
func VerifyLogin(db *sql.DB, email, password string) (models.User, error) {
	var (
		u    models.User
		hash string
	)
	err := db.QueryRow(`SELECT id, email, name, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.Name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidLogin
	}
	if err != nil {
		return models.User{}, err
	}
	// federated accounts have no password and cannot log in locally
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, ErrInvalidLogin
	}
	return u, nil
}

// UpsertFederatedUser records a user seen through the Google credential
// exchange. The stored name and email track the collaborator's copy.
func UpsertFederatedUser(db *sql.DB, profile models.UserProfile) (models.User, error) {
	u := models.User{ID: profile.ID, Email: profile.Email, Name: profile.Name}
	_, err := db.Exec(`
		INSERT INTO users(id, email, name) VALUES(?,?,?)
		ON CONFLICT(id) DO UPDATE SET email=excluded.email, name=excluded.name
	`, u.ID, u.Email, u.Name)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
