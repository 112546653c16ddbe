package request

type AccessRequest struct {
	Password string `json:"password" validate:"required"`
}
