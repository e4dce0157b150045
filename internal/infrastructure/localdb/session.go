package localdb

import (
	"encoding/json"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// SessionStore guarda el token y el perfil de usuario bajo las mismas llaves fijas
// que usaba el front (minierp_token y minierp_usuario).
type SessionStore struct {
	store *Store
}

func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store}
}

// Get devuelve la sesión guardada, o nil si no hay token.
func (r *SessionStore) Get() (*entity.Session, error) {
	token, err := r.store.get(keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	sess := &entity.Session{Token: string(token)}
	usuario, err := r.store.get(keyUsuario)
	if err != nil {
		return nil, err
	}
	if len(usuario) > 0 && json.Valid(usuario) {
		sess.Usuario = usuario
	}
	return sess, nil
}

// Put reemplaza la sesión completa.
func (r *SessionStore) Put(s *entity.Session) error {
	if err := r.store.put(keyToken, []byte(s.Token)); err != nil {
		return err
	}
	if len(s.Usuario) > 0 {
		return r.store.put(keyUsuario, s.Usuario)
	}
	return r.store.delete(keyUsuario)
}

// Clear elimina token y perfil.
func (r *SessionStore) Clear() error {
	if err := r.store.delete(keyToken); err != nil {
		return err
	}
	return r.store.delete(keyUsuario)
}
