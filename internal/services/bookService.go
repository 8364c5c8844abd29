package services

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/db"
	"github.com/libroteca/backend/internal/models"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

func findBooks(filter bson.M) ([]models.Libro, error) {
	collection := db.GetCollection("libros")

	cursor, err := collection.Find(context.TODO(), filter, newestFirst)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer cursor.Close(context.TODO())

	libros := []models.Libro{}
	if err := cursor.All(context.TODO(), &libros); err != nil {
		return nil, apperrors.Internal(err)
	}
	return libros, nil
}

// ListVisible returns every public book the viewer has not hidden, newest
// first. ownerFilter, when non-empty, narrows the result to one owner's books.
func ListVisible(viewerID, ownerFilter string) ([]models.Libro, error) {
	filter := bson.M{
		"esPublico":               true,
		"usuariosQueLoEliminaron": bson.M{"$ne": viewerID},
	}
	if ownerFilter != "" {
		filter["usuarioId"] = ownerFilter
	}
	return findBooks(filter)
}

// ListByOwner returns a user's public books, newest first.
func ListByOwner(ownerID string) ([]models.Libro, error) {
	return findBooks(bson.M{"usuarioId": ownerID, "esPublico": true})
}

// SearchByTitle matches titles case-insensitively by substring, filtered by
// the viewer's visibility.
func SearchByTitle(titulo, viewerID string) ([]models.Libro, error) {
	return findBooks(bson.M{
		"titulo":                  bson.M{"$regex": regexp.QuoteMeta(titulo), "$options": "i"},
		"esPublico":               true,
		"usuariosQueLoEliminaron": bson.M{"$ne": viewerID},
	})
}

// GetBookByID fetches one book as seen by the viewer. A book the viewer has
// hidden reads as missing.
func GetBookByID(bookID, viewerID string) (models.Libro, error) {
	collection := db.GetCollection("libros")

	var libro models.Libro
	err := collection.FindOne(context.TODO(), bson.M{
		"_id":                     bookID,
		"usuariosQueLoEliminaron": bson.M{"$ne": viewerID},
	}).Decode(&libro)
	if err == mongo.ErrNoDocuments {
		return models.Libro{}, apperrors.NotFound("Libro no encontrado")
	}
	if err != nil {
		return models.Libro{}, apperrors.Internal(err)
	}
	return libro, nil
}

// CreateBook inserts a new book. Every book starts public with an empty
// hide list.
func CreateBook(ownerID, titulo, autor, descripcion, rutaPdf, photo string) (models.Libro, error) {
	if titulo == "" || autor == "" {
		return models.Libro{}, apperrors.Validation("Título y autor son requeridos")
	}
	if ownerID == "" {
		return models.Libro{}, apperrors.Validation("usuarioId es requerido")
	}

	now := time.Now()
	libro := models.Libro{
		ID:                      uuid.NewString(),
		Titulo:                  titulo,
		Autor:                   autor,
		Descripcion:             descripcion,
		RutaPdf:                 rutaPdf,
		UsuarioID:               ownerID,
		Photo:                   photo,
		EsPublico:               true,
		UsuariosQueLoEliminaron: []string{},
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	collection := db.GetCollection("libros")
	if _, err := collection.InsertOne(context.TODO(), libro); err != nil {
		return models.Libro{}, apperrors.Internal(err)
	}
	return libro, nil
}

// BookUpdate carries the fields an owner may change. Nil pointers mean
// "leave as is"; descripción, rutaPdf and photo may be blanked on purpose.
type BookUpdate struct {
	Titulo      string
	Autor       string
	Descripcion *string
	RutaPdf     *string
	Photo       *string
}

// UpdateBook overwrites only the supplied fields. A missing book and a
// non-owner caller produce the same "not found" so existence never leaks.
func UpdateBook(bookID, ownerID string, upd BookUpdate) (models.Libro, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Titulo != "" {
		set["titulo"] = upd.Titulo
	}
	if upd.Autor != "" {
		set["autor"] = upd.Autor
	}
	if upd.Descripcion != nil {
		set["descripcion"] = *upd.Descripcion
	}
	if upd.RutaPdf != nil {
		set["rutaPdf"] = *upd.RutaPdf
	}
	if upd.Photo != nil {
		set["photo"] = *upd.Photo
	}

	collection := db.GetCollection("libros")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var libro models.Libro
	err := collection.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": bookID, "usuarioId": ownerID}, bson.M{"$set": set}, opts).Decode(&libro)
	if err == mongo.ErrNoDocuments {
		return models.Libro{}, apperrors.NotFound("Libro no encontrado o no tienes permisos para editarlo")
	}
	if err != nil {
		return models.Libro{}, apperrors.Internal(err)
	}
	return libro, nil
}

// RemoveBook deletes a book permanently when the acting user owns it.
// Anyone else only hides the book from their own view; $addToSet keeps the
// hide list duplicate-free no matter how often they retry.
// The permanent branch returns true.
func RemoveBook(bookID, actingUserID string) (bool, error) {
	collection := db.GetCollection("libros")

	var libro models.Libro
	err := collection.FindOne(context.TODO(), bson.M{"_id": bookID}).Decode(&libro)
	if err == mongo.ErrNoDocuments {
		return false, apperrors.NotFound("Libro no encontrado")
	}
	if err != nil {
		return false, apperrors.Internal(err)
	}

	if libro.UsuarioID == actingUserID {
		if _, err := collection.DeleteOne(context.TODO(), bson.M{"_id": bookID}); err != nil {
			return false, apperrors.Internal(err)
		}
		return true, nil
	}

	_, err = collection.UpdateOne(context.TODO(),
		bson.M{"_id": bookID},
		bson.M{"$addToSet": bson.M{"usuariosQueLoEliminaron": actingUserID}},
	)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return false, nil
}

// RestoreBook takes the acting user off the book's hide list. Restoring a
// book the user never hid is a no-op, not an error.
func RestoreBook(bookID, actingUserID string) (models.Libro, error) {
	collection := db.GetCollection("libros")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var libro models.Libro
	err := collection.FindOneAndUpdate(context.TODO(),
		bson.M{"_id": bookID},
		bson.M{"$pull": bson.M{"usuariosQueLoEliminaron": actingUserID}},
		opts).Decode(&libro)
	if err == mongo.ErrNoDocuments {
		return models.Libro{}, apperrors.NotFound("Libro no encontrado")
	}
	if err != nil {
		return models.Libro{}, apperrors.Internal(err)
	}
	return libro, nil
}

// ListAllBooks returns every book regardless of visibility. Admin use only.
func ListAllBooks() ([]models.Libro, error) {
	return findBooks(bson.M{})
}
