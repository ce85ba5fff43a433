// Package password — хеширование и проверка паролей (bcrypt).
// Для остального кода хеш непрозрачен: только Hash и Verify.
package password

import "golang.org/x/crypto/bcrypt"

// Hash возвращает bcrypt-хеш пароля с заданной стоимостью.
// cost <= 0 — используется bcrypt.DefaultCost.
func Hash(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает пароль с хешем (constant-time внутри bcrypt).
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
