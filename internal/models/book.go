package models

import "time"

// Libro is a shared book record. A book is visible to a viewer when it is
// public and the viewer has not hidden it; hiding only adds the viewer to
// UsuariosQueLoEliminaron, the document itself stays put for everyone else.
type Libro struct {
	ID          string `bson:"_id" json:"id"`
	Titulo      string `bson:"titulo" json:"titulo"`
	Autor       string `bson:"autor" json:"autor"`
	Descripcion string `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	RutaPdf     string `bson:"rutaPdf,omitempty" json:"rutaPdf,omitempty"`
	UsuarioID   string `bson:"usuarioId" json:"usuarioId"`
	Photo       string `bson:"photo,omitempty" json:"photo,omitempty"`
	EsPublico   bool   `bson:"esPublico" json:"esPublico"`
	// Set of user ids that soft-deleted this book from their own view.
	UsuariosQueLoEliminaron []string  `bson:"usuariosQueLoEliminaron" json:"usuariosQueLoEliminaron"`
	CreatedAt               time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VisiblePara reports whether the book shows up for the given viewer.
func (l *Libro) VisiblePara(usuarioID string) bool {
	if !l.EsPublico {
		return false
	}
	for _, id := range l.UsuariosQueLoEliminaron {
		if id == usuarioID {
			return false
		}
	}
	return true
}
