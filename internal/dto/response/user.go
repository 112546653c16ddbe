package response

import "storefront/internal/data/entity"

type UserStatsResponse struct {
	Total  int64 `json:"total"`
	Online int64 `json:"online"`
	Admins int64 `json:"admins"`
	Banned int64 `json:"banned"`
}

// UserListResponse is the admin panel payload: one page of users plus global counters.
type UserListResponse struct {
	Users      []UserResponse    `json:"users"`
	Stats      UserStatsResponse `json:"stats"`
	Pagination PaginationMeta    `json:"pagination"`
}

func StatsToResponse(stats *entity.UserStats) UserStatsResponse {
	if stats == nil {
		return UserStatsResponse{}
	}
	return UserStatsResponse{
		Total:  stats.Total,
		Online: stats.Online,
		Admins: stats.Admins,
		Banned: stats.Banned,
	}
}
