package models

import "time"

const AccountRowID = 1

type Account struct {
	ID                 uint   `gorm:"primaryKey"`
	PasswordHash       string `gorm:"not null"`
	MustChangePassword bool   `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Account) TableName() string {
	return "accounts"
}
