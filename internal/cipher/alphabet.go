package cipher

// symbols — упорядоченный набор символов, над которым работают оба шифра.
const symbols = " ,.:(_)-0123456789АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"

// Alphabet — таблица символов с поиском позиции за O(1).
type Alphabet struct {
	runes []rune
	index map[rune]int
}

// Default — алфавит сервиса, 51 символ.
var Default = newAlphabet(symbols)

func newAlphabet(s string) *Alphabet {
	a := &Alphabet{
		runes: []rune(s),
		index: make(map[rune]int, len(s)),
	}
	for i, r := range a.runes {
		a.index[r] = i
	}
	return a
}

func (a *Alphabet) Len() int {
	return len(a.runes)
}

// IndexOf возвращает позицию r; false, если символа нет в алфавите.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// At возвращает символ на позиции pos по модулю длины алфавита, отрицательные позиции заворачиваются.
func (a *Alphabet) At(pos int) rune {
	n := len(a.runes)
	pos %= n
	if pos < 0 {
		pos += n
	}
	return a.runes[pos]
}
