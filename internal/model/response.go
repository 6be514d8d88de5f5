package model

// TokenPair is returned by register and login. ExpiresIn is the access token
// lifetime in seconds.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	User   PublicUser `json:"user"`
	Tokens TokenPair  `json:"tokens"`
}

// RefreshResponse carries the re-issued access token. The refresh token is
// not rotated, so it is deliberately absent here.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	User PublicUser `json:"user"`
}

type PackResponse struct {
	Pack IconPack `json:"pack"`
}

type PackListResponse struct {
	Packs []IconPack `json:"packs"`
	Total int        `json:"total"`
}
