package client

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credentials — параметры аутентификации на платформе.
//
// Задаётся либо статический Token, либо пара ClientID/ClientSecret
// для OAuth2 client credentials flow.
type Credentials struct {
	Token        string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// TokenSource возвращает источник токенов для client credentials,
// либо nil, если задан статический токен.
func (c Credentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if c.ClientID == "" {
		if c.Token == "" {
			return nil, ErrNoCredentials
		}
		return nil, nil
	}
	cfg := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
	}
	return cfg.TokenSource(ctx), nil
}
