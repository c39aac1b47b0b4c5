package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	Phone        string
	PasswordHash string
}
