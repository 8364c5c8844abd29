package models

import "time"

// Roles a user account can hold.
const (
	RolUsuario = "usuario"
	RolAdmin   = "admin"
)

type Usuario struct {
	ID        string     `bson:"_id" json:"id"`
	Nombre    string     `bson:"nombre" json:"nombre"`
	Email     string     `bson:"email" json:"email" validate:"required,email"`
	Password  string     `bson:"password" json:"-"`
	Birthday  *time.Time `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Photo     string     `bson:"photo,omitempty" json:"photo,omitempty"`
	Rol       string     `bson:"rol" json:"rol"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
