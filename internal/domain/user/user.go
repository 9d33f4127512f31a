package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null" json:"email"`
	Role      Role      `gorm:"type:varchar(20);not null;index:idx_users_role" json:"role"`
	Bio       string    `gorm:"type:varchar(500)" json:"bio"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Role string

const (
	RoleEntrepreneur Role = "ENTREPRENEUR"
	RoleInvestor     Role = "INVESTOR"
	RoleMentor       Role = "MENTOR"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEntrepreneur, RoleInvestor, RoleMentor:
		return true
	}
	return false
}
