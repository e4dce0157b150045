package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
)

// AuthAPI cliente de /usuarios (login).
type AuthAPI struct {
	c *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type loginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// Login autentica contra el backend y devuelve la sesión emitida.
// El nombre del campo del token ha cambiado entre versiones del backend,
// así que se prueban los alias conocidos en orden.
func (a *AuthAPI) Login(ctx context.Context, correo, password string) (*entity.Session, error) {
	var raw json.RawMessage
	req := loginRequest{Correo: correo, Password: password}
	if err := a.c.do(ctx, http.MethodPost, "/usuarios/login", req, &raw, false); err != nil {
		return nil, err
	}

	body, err := unwrapObject(raw)
	if err != nil {
		return nil, err
	}

	token := pickString(body, "token", "access_token", "accessToken", "jwt")
	if token == "" {
		return nil, errors.New("respuesta de login sin token")
	}

	sess := &entity.Session{Token: token}
	for _, key := range []string{"usuario", "user"} {
		if u, ok := body[key]; ok {
			if raw, err := json.Marshal(u); err == nil {
				sess.Usuario = raw
				break
			}
		}
	}
	return sess, nil
}
