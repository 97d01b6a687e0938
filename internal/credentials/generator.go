package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// GeneratedLength - длина пароля, который предлагает форма.
	GeneratedLength  = 16
	generatorCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"
)

// Generate возвращает случайный пароль заданной длины из букв, цифр и символов !@#$%^&*()_+.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = GeneratedLength
	}
	limit := big.NewInt(int64(len(generatorCharset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("ошибка генерации пароля: %w", err)
		}
		buf[i] = generatorCharset[n.Int64()]
	}
	return string(buf), nil
}
