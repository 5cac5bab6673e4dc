package user

import "time"

type User struct {
	ID         int64     `gorm:"primaryKey"`
	EmpleadoID *int64    `gorm:"column:empleado_id;uniqueIndex"`
	Email      string    `gorm:"column:email;size:255;uniqueIndex;not null"`
	Password   string    `gorm:"column:password;not null"`
	Roles      []Role    `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "usuarios"
}

type Role struct {
	ID          int64        `gorm:"primaryKey"`
	Name        string       `gorm:"column:name;size:125;uniqueIndex;not null"`
	Permissions []Permission `gorm:"many2many:role_permissions;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

type Permission struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;size:125;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}

// AccessToken is one issued bearer token, keyed by its JWT id.
type AccessToken struct {
	ID         string     `gorm:"primaryKey;column:id;size:36"`
	UserID     int64      `gorm:"column:user_id;index;not null"`
	Name       string     `gorm:"column:name;size:255"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}
