package users

import "golang.org/x/crypto/bcrypt"

// User is a registered account, as persisted in the usuarios collection.
// Email is the lookup key; the store does not enforce its uniqueness, matching
// the historical behavior of this application.
type User struct {
	ID              string `json:"id"`
	FirstName       string `json:"nombre"`
	PaternalSurname string `json:"apellido_paterno"`
	MaternalSurname string `json:"apellido_materno"`
	BirthDate       string `json:"fecha_nacimiento"`
	Email           string `json:"correo_registro"`
	PasswordHash    string `json:"contrasena"`
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
