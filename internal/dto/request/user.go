package request

// BanRequest bans (true) or unbans (false) a user. A pointer so a missing field fails validation.
type BanRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}
