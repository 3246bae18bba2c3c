package models

import "time"

const (
	VigenereMethodID = 1
	CaesarMethodID   = 2

	StatusCompleted = "completed"
)

type User struct {
	Login      string `gorm:"primaryKey"`
	SecretHash string `gorm:"not null"`
}

type Method struct {
	ID          int               `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Caption     string            `json:"caption"`
	JSONParams  map[string]string `json:"json_params" gorm:"serializer:json"`
	Description string            `json:"description"`
}

// Session is one recorded cipher operation. ID is not unique across the
// lifetime of the store, Seq is.
type Session struct {
	Seq       int64          `json:"-" gorm:"primaryKey;autoIncrement"`
	ID        int            `json:"id" gorm:"index;not null"`
	UserID    string         `json:"user_id" gorm:"not null"`
	MethodID  int            `json:"method_id" gorm:"not null"`
	DataIn    string         `json:"data_in"`
	Params    map[string]any `json:"params" gorm:"serializer:json"`
	DataOut   string         `json:"data_out"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	TimeOp    float64        `json:"time_op"`
}

// DefaultMethods are seeded into every store on creation.
func DefaultMethods() []Method {
	return []Method{
		{
			ID:          VigenereMethodID,
			Caption:     "Vigenere Cipher",
			JSONParams:  map[string]string{"key": "string"},
			Description: "Метод шифрования алфавитного текста с использованием ряда различных шифров Цезаря на основе букв ключевого слова.",
		},
		{
			ID:          CaesarMethodID,
			Caption:     "Caesar Cipher",
			JSONParams:  map[string]string{"shift": "int"},
			Description: "Метод подстановочного шифра, где каждая буква в открытом тексте сдвигается на определенное количество позиций вниз по алфавиту.",
		},
	}
}
