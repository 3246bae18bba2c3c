package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"encryption-service/internal/cipher"
	"encryption-service/internal/models"
)

var (
	errParamsNotObject = errors.New("params must be a JSON object")
	errKeyRequired     = errors.New("parameter 'key' is required for Vigenere cipher")
	errKeyNotString    = errors.New("parameter 'key' must be a string")
	errKeyAlphabet     = errors.New("parameter 'key' contains symbols outside the alphabet")
	errShiftNotInt     = errors.New("parameter 'shift' must be an integer")
)

// CipherParams is the per-method parameter variant. Only the types in this
// package implement it.
type CipherParams interface {
	Apply(text string, encrypt bool) (string, error)
	methodID() int
}

type VigenereParams struct {
	Key string
}

func (p VigenereParams) Apply(text string, encrypt bool) (string, error) {
	return cipher.Vigenere(text, p.Key, encrypt)
}

func (VigenereParams) methodID() int { return models.VigenereMethodID }

type CaesarParams struct {
	Shift int
}

func (p CaesarParams) Apply(text string, encrypt bool) (string, error) {
	return cipher.Caesar(text, p.Shift, encrypt), nil
}

func (CaesarParams) methodID() int { return models.CaesarMethodID }

// DecodeParams decodes raw params. An empty body and null give an empty object.
func DecodeParams(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var params map[string]any
	if err := dec.Decode(&params); err != nil {
		return nil, errParamsNotObject
	}
	return params, nil
}

// ParseParams selects and validates the variant for methodID.
func ParseParams(methodID int, params map[string]any) (CipherParams, error) {
	switch methodID {
	case models.VigenereMethodID:
		return parseVigenere(params)
	case models.CaesarMethodID:
		return parseCaesar(params)
	default:
		return nil, fmt.Errorf("unknown method %d", methodID)
	}
}

func parseVigenere(params map[string]any) (VigenereParams, error) {
	v, ok := params["key"]
	if !ok || v == nil {
		return VigenereParams{}, errKeyRequired
	}
	key, ok := v.(string)
	if !ok {
		return VigenereParams{}, errKeyNotString
	}

	key = cipher.Upper(key)
	switch err := cipher.ValidateKey(key); {
	case errors.Is(err, cipher.ErrEmptyKey):
		return VigenereParams{}, errKeyRequired
	case err != nil:
		return VigenereParams{}, errKeyAlphabet
	}
	return VigenereParams{Key: key}, nil
}

func parseCaesar(params map[string]any) (CaesarParams, error) {
	v, ok := params["shift"]
	if !ok {
		return CaesarParams{}, nil
	}

	shift, err := toInt(v)
	if err != nil {
		return CaesarParams{}, errShiftNotInt
	}
	return CaesarParams{Shift: shift}, nil
}

// toInt accepts integers, numbers truncated toward zero and decimal strings.
// Values outside int64 are reduced modulo the alphabet length, which leaves
// the Caesar result unchanged.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := parseInteger(n.String()); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return n, nil
	case string:
		return parseInteger(strings.TrimSpace(n))
	default:
		return 0, errShiftNotInt
	}
}

func parseInteger(s string) (int, error) {
	i, err := strconv.ParseInt(s, 10, 0)
	if err == nil {
		return int(i), nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}

	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return 0, errShiftNotInt
	}
	return reduce(b), nil
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errShiftNotInt
	}
	if math.Abs(f) <= 1<<53 {
		return int(math.Trunc(f)), nil
	}
	// beyond 2^53 every float64 is integral
	b, _ := big.NewFloat(f).Int(nil)
	return reduce(b), nil
}

func reduce(b *big.Int) int {
	m := new(big.Int).Mod(b, big.NewInt(int64(cipher.Default.Len())))
	return int(m.Int64())
}
