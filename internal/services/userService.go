package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/db"
	"github.com/libroteca/backend/internal/models"
)

// GetUserByID looks a user up by its opaque id.
func GetUserByID(userID string) (models.Usuario, error) {
	collection := db.GetCollection("usuarios")

	var user models.Usuario
	err := collection.FindOne(context.TODO(), bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.Usuario{}, apperrors.NotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.Usuario{}, apperrors.Internal(err)
	}
	return user, nil
}

// ProfileUpdate carries the profile fields a user may change. Email, password
// and role are deliberately not updatable through this path.
type ProfileUpdate struct {
	Nombre   string
	Birthday *time.Time
	Photo    string
}

// UpdateProfile overwrites only the supplied fields.
func UpdateProfile(userID string, upd ProfileUpdate) (models.Usuario, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Nombre != "" {
		set["nombre"] = upd.Nombre
	}
	if upd.Birthday != nil {
		set["birthday"] = *upd.Birthday
	}
	if upd.Photo != "" {
		set["photo"] = upd.Photo
	}

	collection := db.GetCollection("usuarios")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.Usuario
	err := collection.FindOneAndUpdate(context.TODO(), bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.Usuario{}, apperrors.NotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.Usuario{}, apperrors.Internal(err)
	}
	return user, nil
}

// DeleteUser removes an account permanently.
func DeleteUser(userID string) error {
	collection := db.GetCollection("usuarios")

	res, err := collection.DeleteOne(context.TODO(), bson.M{"_id": userID})
	if err != nil {
		return apperrors.Internal(err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("Usuario no encontrado")
	}
	return nil
}

// ListUsers returns every account, newest first. The password hash never
// leaves the model's json:"-" field, but it is stripped from the query too.
func ListUsers() ([]models.Usuario, error) {
	collection := db.GetCollection("usuarios")

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := collection.Find(context.TODO(), bson.M{}, findOpts)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer cursor.Close(context.TODO())

	users := []models.Usuario{}
	if err := cursor.All(context.TODO(), &users); err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}
