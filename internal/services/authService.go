package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/config"
	"github.com/libroteca/backend/internal/db"
	"github.com/libroteca/backend/internal/models"
)

const (
	bcryptCost  = 10
	tokenExpiry = 7 * 24 * time.Hour
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT signs a bearer token binding user id and role.
func GenerateJWT(userID, rol string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"rol":     rol,
		"exp":     time.Now().Add(tokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

// ParseJWT verifies a bearer token and returns the user id and role it binds.
func ParseJWT(tokenString string) (userID, rol string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", apperrors.Auth("Token inválido")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", apperrors.Auth("Token inválido")
	}
	userID, okID := claims["user_id"].(string)
	rol, okRol := claims["rol"].(string)
	if !okID || !okRol {
		return "", "", apperrors.Auth("Token inválido")
	}
	return userID, rol, nil
}

// RegisterInput carries a registration request into the service layer.
type RegisterInput struct {
	Nombre   string
	Email    string
	Password string
	Birthday *time.Time
	Photo    string
	Rol      string
}

// RegisterUser creates an account and issues its first token. Any requested
// role other than admin collapses to the plain user role.
func RegisterUser(in RegisterInput) (models.Usuario, string, error) {
	if in.Nombre == "" || in.Email == "" || in.Password == "" {
		return models.Usuario{}, "", apperrors.Validation("Nombre, email y contraseña son requeridos")
	}

	collection := db.GetCollection("usuarios")

	var existing models.Usuario
	err := collection.FindOne(context.TODO(), bson.M{"email": in.Email}).Decode(&existing)
	if err == nil {
		return models.Usuario{}, "", apperrors.Conflict("El email ya está registrado")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return models.Usuario{}, "", apperrors.Internal(err)
	}

	rol := models.RolUsuario
	if in.Rol == models.RolAdmin {
		rol = models.RolAdmin
	}

	now := time.Now()
	user := models.Usuario{
		ID:        uuid.NewString(),
		Nombre:    in.Nombre,
		Email:     in.Email,
		Password:  hashed,
		Birthday:  in.Birthday,
		Photo:     in.Photo,
		Rol:       rol,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := collection.InsertOne(context.TODO(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Usuario{}, "", apperrors.Conflict("El email ya está registrado")
		}
		return models.Usuario{}, "", apperrors.Internal(err)
	}

	token, err := GenerateJWT(user.ID, user.Rol)
	if err != nil {
		return models.Usuario{}, "", apperrors.Internal(err)
	}
	return user, token, nil
}

// LoginUser authenticates a user and returns it with a fresh token. Unknown
// email and wrong password fail identically so callers cannot probe for
// registered addresses.
func LoginUser(email, password string) (models.Usuario, string, error) {
	if email == "" || password == "" {
		return models.Usuario{}, "", apperrors.Validation("Email y contraseña son requeridos")
	}

	collection := db.GetCollection("usuarios")

	var user models.Usuario
	err := collection.FindOne(context.TODO(), bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.Usuario{}, "", apperrors.Auth("Credenciales inválidas")
	}
	if err != nil {
		return models.Usuario{}, "", apperrors.Internal(err)
	}
	if !VerifyPassword(password, user.Password) {
		return models.Usuario{}, "", apperrors.Auth("Credenciales inválidas")
	}

	token, err := GenerateJWT(user.ID, user.Rol)
	if err != nil {
		return models.Usuario{}, "", apperrors.Internal(err)
	}
	return user, token, nil
}
