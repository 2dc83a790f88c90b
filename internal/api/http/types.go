package http

import (
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

// Request and response shapes for the JSON API. Error bodies are
// httpx.ErrorResponse everywhere.

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int64              `json:"expires_in"`
	User        domain.UserSummary `json:"user"`
}

func newTokenResponse(res *domain.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(res.ExpiresIn.Seconds()),
		User:        res.User,
	}
}

type MeResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Roles       []string   `json:"roles"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type UpdateMeRequest struct {
	DisplayName string `json:"display_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type RoleInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

type FruitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Season      string `json:"season"`
	RegionID    string `json:"region_id,omitempty"`
}

type FruitResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Season      string    `json:"season"`
	RegionID    string    `json:"region_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newFruitResponse(f domain.Fruit) FruitResponse {
	return FruitResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Season:      f.Season,
		RegionID:    f.RegionID,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

type ListFruitsResponse struct {
	Fruits []FruitResponse `json:"fruits"`
}

type RegionRequest struct {
	Name        string `json:"name"`
	Climate     string `json:"climate"`
	Description string `json:"description"`
}

type RegionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Climate     string    `json:"climate"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newRegionResponse(r domain.Region) RegionResponse {
	return RegionResponse{
		ID:          r.ID,
		Name:        r.Name,
		Climate:     r.Climate,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ListRegionsResponse struct {
	Regions []RegionResponse `json:"regions"`
}

type RecipeRequest struct {
	FruitID      string `json:"fruit_id"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
}

type RecipeResponse struct {
	ID           string    `json:"id"`
	FruitID      string    `json:"fruit_id"`
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	AuthorID     string    `json:"author_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newRecipeResponse(r domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           r.ID,
		FruitID:      r.FruitID,
		Title:        r.Title,
		Instructions: r.Instructions,
		AuthorID:     r.AuthorID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

type RecognizeRequest struct {
	Image string `json:"image"`
}

type RecognizeResponse struct {
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Fruit      *FruitResponse `json:"fruit,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
