// internal/models/user.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName       string     `json:"first_name" gorm:"size:100;not null"`
	LastName        string     `json:"last_name" gorm:"size:100;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"`
	Role            UserRole   `json:"role" gorm:"type:varchar(20);not null"`
	Status          UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	AvatarURL       string     `json:"avatar_url,omitempty" gorm:"size:512"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	ProfileData     JSONB      `json:"profile_data,omitempty" gorm:"type:jsonb"`

	// Relationships
	Designer *Designer       `json:"designer,omitempty" gorm:"foreignKey:UserID"`
	Requests []DesignRequest `json:"requests,omitempty" gorm:"foreignKey:ClientID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

var ErrRoleImmutable = errors.New("user role cannot be changed after creation")

// BeforeUpdate rejects role mutation. The role a user registers with is
// fixed for the lifetime of the account.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if !tx.Statement.Changed("Role") {
		return nil
	}
	return ErrRoleImmutable
}

// Designer holds the designer-side contact details. Exactly one row exists
// per designer-role user.
type Designer struct {
	BaseModel
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	ContactNumber *string   `json:"contact_number,omitempty" gorm:"size:50"`
	Address       *string   `json:"address,omitempty" gorm:"size:512"`

	// Relationships
	User      User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Portfolio *Portfolio `json:"portfolio,omitempty" gorm:"foreignKey:DesignerID"`
}
