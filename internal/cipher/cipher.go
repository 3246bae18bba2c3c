package cipher

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrEmptyKey         = errors.New("empty key")
	ErrKeyOutOfAlphabet = errors.New("key contains symbols outside the alphabet")
)

// Upper приводит строку к верхнему регистру по правилам Unicode.
func Upper(s string) string {
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	return cases.Upper(language.Und).String(s)
}

// ValidateKey проверяет, что ключ в верхнем регистре пригоден для шифра Виженера.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	for _, r := range Upper(key) {
		if !Default.Contains(r) {
			return ErrKeyOutOfAlphabet
		}
	}
	return nil
}

// Vigenere шифрует или расшифровывает text ключом key. Позиция в ключе идёт
// по индексу в тексте, поэтому символы вне алфавита тоже расходуют символ ключа.
func Vigenere(text, key string, encrypt bool) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	keyRunes := []rune(Upper(key))

	var b strings.Builder
	b.Grow(len(text))
	for i, r := range []rune(Upper(text)) {
		pos, ok := Default.IndexOf(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		shift, _ := Default.IndexOf(keyRunes[i%len(keyRunes)])
		if !encrypt {
			shift = -shift
		}
		b.WriteRune(Default.At(pos + shift))
	}
	return b.String(), nil
}

// Caesar сдвигает каждый символ алфавита на shift позиций.
func Caesar(text string, shift int, encrypt bool) string {
	// сначала по модулю: -math.MinInt переполняется
	shift %= Default.Len()
	if !encrypt {
		shift = -shift
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		pos, ok := Default.IndexOf(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(Default.At(pos + shift))
	}
	return b.String()
}
