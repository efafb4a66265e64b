package models

// Request payloads. Author, reviews and geometry are always derived server
// side; they have no fields here so client-supplied values can never be
// trusted into a document.

type NewCampground struct {
	Title       string     `json:"title" validate:"required,min=1,nohtml"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Description string     `json:"description" validate:"required,min=1,nohtml"`
	Location    string     `json:"location" validate:"required,min=1,nohtml"`
	Images      []NewImage `json:"images" validate:"omitempty,dive"`
}

type NewImage struct {
	URL      string `json:"url" validate:"required,uri"`
	PublicID string `json:"publicId" validate:"required,min=1"`
}

type UpdateCampground struct {
	Title       string     `json:"title" validate:"required,min=1,nohtml"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Description string     `json:"description" validate:"required,min=1,nohtml"`
	Location    string     `json:"location" validate:"required,min=1,nohtml"`
	Images      []NewImage `json:"images" validate:"omitempty,dive"`
	// Cloudinary public ids of images to remove before appending uploads.
	DeleteImages []string `json:"deleteImages" validate:"omitempty,dive,min=1"`
}

type ReviewRequest struct {
	Body   string  `json:"body" validate:"required,min=1,nohtml"`
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,nohtml"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserLoginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}
